package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateBankAccount(ctx context.Context, b *model.BankAccount) (*model.BankAccount, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BankAccount), args.Error(1)
}

func (m *MockPaymentRepository) UpdateBankAccount(ctx context.Context, b *model.BankAccount) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BankAccount), args.Error(1)
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, p *model.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) LatestForApplication(ctx context.Context, applicationID int64) (*model.Payment, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, status string, pq repository.PageQuery) (*repository.PageResult[model.Payment], error) {
	args := m.Called(ctx, status, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Payment]), args.Error(1)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreditUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error {
	args := m.Called(ctx, userID, applicationID, amount, description)
	return args.Error(0)
}

func (m *MockWalletRepository) SettleUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error {
	args := m.Called(ctx, userID, applicationID, amount, description)
	return args.Error(0)
}

func (m *MockWalletRepository) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletRepository) ProcessWithdrawal(ctx context.Context, requestID, processedBy int64, approve bool, reason string) (*model.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, processedBy, approve, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletRepository) FindWithdrawalByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletRepository) ListWithdrawals(ctx context.Context, walletID int64) ([]model.WithdrawalRequest, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletRepository) ListPendingWithdrawals(ctx context.Context) ([]model.WithdrawalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID int64, pq repository.PageQuery) (*repository.PageResult[model.WalletTransaction], error) {
	args := m.Called(ctx, walletID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WalletTransaction]), args.Error(1)
}
