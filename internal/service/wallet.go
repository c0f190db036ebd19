package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// WalletOverview is the wallet page payload for an agent or HQ user.
type WalletOverview struct {
	Wallet       *model.Wallet             `json:"wallet"`
	Transactions []model.WalletTransaction `json:"transactions"`
	Withdrawals  []model.WithdrawalRequest `json:"withdrawals"`
}

// WalletService implements commission wallets and withdrawal processing.
// Business rules live here; the multi-row balance movements run in the
// repository's transactions.
type WalletService interface {
	Overview(ctx context.Context, userID int64) (*WalletOverview, error)
	// RequestWithdrawal validates the minimum amount and available
	// balance before reserving the funds.
	RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error)
	// Process approves or rejects a pending request. Admin only.
	Process(ctx context.Context, admin *model.User, requestID int64, approve bool, reason string) (*model.WithdrawalRequest, error)
	ListPending(ctx context.Context) ([]model.WithdrawalRequest, error)
	Transactions(ctx context.Context, userID int64, limit, offset int) (*repository.PageResult[model.WalletTransaction], error)
}

type walletService struct {
	wallets repository.WalletRepository
	notify  Notifier
}

// NewWalletService constructs a WalletService.
func NewWalletService(wallets repository.WalletRepository, notify Notifier) WalletService {
	return &walletService{wallets: wallets, notify: notify}
}

func (s *walletService) Overview(ctx context.Context, userID int64) (*WalletOverview, error) {
	w, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	txns, err := s.wallets.ListTransactions(ctx, w.ID, repository.PageQuery{Limit: 20, Offset: 0})
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.wallets.ListWithdrawals(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &WalletOverview{Wallet: w, Transactions: txns.Items, Withdrawals: withdrawals}, nil
}

func (s *walletService) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	if amount.LessThan(model.MinWithdrawalAmount) {
		return nil, ErrAmountTooSmall
	}
	w, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(w.CurrentBalance) {
		return nil, ErrInsufficientBalance
	}
	return s.wallets.RequestWithdrawal(ctx, userID, amount)
}

func (s *walletService) Process(ctx context.Context, admin *model.User, requestID int64, approve bool, reason string) (*model.WithdrawalRequest, error) {
	if !approve && reason == "" {
		return nil, ErrReasonRequired
	}
	req, err := s.wallets.ProcessWithdrawal(ctx, requestID, admin.ID, approve, reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *walletService) ListPending(ctx context.Context) ([]model.WithdrawalRequest, error) {
	return s.wallets.ListPendingWithdrawals(ctx)
}

func (s *walletService) Transactions(ctx context.Context, userID int64, limit, offset int) (*repository.PageResult[model.WalletTransaction], error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	w, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.wallets.ListTransactions(ctx, w.ID, repository.PageQuery{Limit: limit, Offset: offset})
}
