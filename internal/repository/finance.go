package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"dfseducation/internal/model"
)

// PaymentRepository defines data access for bank accounts and
// application payments.
type PaymentRepository interface {
	CreateBankAccount(ctx context.Context, b *model.BankAccount) (*model.BankAccount, error)
	UpdateBankAccount(ctx context.Context, b *model.BankAccount) error
	// ListBankAccounts returns accounts, only active ones when activeOnly.
	ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error)

	CreatePayment(ctx context.Context, p *model.Payment) (*model.Payment, error)
	UpdatePayment(ctx context.Context, p *model.Payment) error
	FindPaymentByID(ctx context.Context, id int64) (*model.Payment, error)
	// LatestForApplication returns the newest payment for an application,
	// or sql.ErrNoRows.
	LatestForApplication(ctx context.Context, applicationID int64) (*model.Payment, error)
	// ListPayments returns payments, optionally filtered by status ("" for
	// all), newest first.
	ListPayments(ctx context.Context, status string, pq PageQuery) (*PageResult[model.Payment], error)
}

// WalletRepository defines data access for wallets. The multi-row
// commission and withdrawal movements run inside a single database
// transaction; callers validate business rules before invoking them.
type WalletRepository interface {
	// GetOrCreate returns the user's wallet, creating an empty one on
	// first use.
	GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error)

	// CreditUpcoming adds amount to upcoming_payments and records a
	// pending earning transaction tied to the application.
	CreditUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error

	// SettleUpcoming moves amount from upcoming_payments to
	// current_balance and total_earned, completes the pending earning
	// transactions for the application, and records a balance transfer.
	SettleUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error

	// RequestWithdrawal moves amount from current_balance to
	// pending_withdrawals and creates the request plus its pending
	// transaction.
	RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error)

	// ProcessWithdrawal finalizes a pending request: approve moves the
	// amount to total_withdrawn, reject refunds it to current_balance and
	// stores the reason.
	ProcessWithdrawal(ctx context.Context, requestID, processedBy int64, approve bool, reason string) (*model.WithdrawalRequest, error)

	FindWithdrawalByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, walletID int64) ([]model.WithdrawalRequest, error)
	ListPendingWithdrawals(ctx context.Context) ([]model.WithdrawalRequest, error)
	ListTransactions(ctx context.Context, walletID int64, pq PageQuery) (*PageResult[model.WalletTransaction], error)
}
