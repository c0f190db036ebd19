package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dfseducation/internal/model"
	repoMocks "dfseducation/internal/repository/mocks"
)

func newWalletForTest() (WalletService, *repoMocks.MockWalletRepository) {
	wallets := new(repoMocks.MockWalletRepository)
	return NewWalletService(wallets, &notifierStub{}), wallets
}

func TestWalletService_RequestWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("below minimum", func(t *testing.T) {
		svc, _ := newWalletForTest()
		_, err := svc.RequestWithdrawal(ctx, 3, decimal.RequireFromString("99.99"))
		assert.ErrorIs(t, err, ErrAmountTooSmall)
	})

	t.Run("more than the balance", func(t *testing.T) {
		svc, wallets := newWalletForTest()
		wallets.On("GetOrCreate", ctx, int64(3)).Return(&model.Wallet{
			ID:             2,
			UserID:         3,
			CurrentBalance: decimal.RequireFromString("150.00"),
		}, nil)

		_, err := svc.RequestWithdrawal(ctx, 3, decimal.RequireFromString("200.00"))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("valid request reaches the repository", func(t *testing.T) {
		svc, wallets := newWalletForTest()
		amount := decimal.RequireFromString("150.00")
		wallets.On("GetOrCreate", ctx, int64(3)).Return(&model.Wallet{
			ID:             2,
			UserID:         3,
			CurrentBalance: decimal.RequireFromString("250.00"),
		}, nil)
		wallets.On("RequestWithdrawal", ctx, int64(3), amount).Return(&model.WithdrawalRequest{
			ID:     11,
			Amount: amount,
			Status: model.WithdrawalPending,
		}, nil)

		req, err := svc.RequestWithdrawal(ctx, 3, amount)

		assert.NoError(t, err)
		assert.Equal(t, int64(11), req.ID)
		wallets.AssertExpectations(t)
	})
}

func TestWalletService_Process(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: 1, Username: "admin", IsSuperuser: true}

	t.Run("reject needs a reason", func(t *testing.T) {
		svc, _ := newWalletForTest()
		_, err := svc.Process(ctx, admin, 11, false, "")
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("approve", func(t *testing.T) {
		svc, wallets := newWalletForTest()
		wallets.On("ProcessWithdrawal", ctx, int64(11), int64(1), true, "").Return(&model.WithdrawalRequest{
			ID:     11,
			Status: model.WithdrawalApproved,
		}, nil)

		req, err := svc.Process(ctx, admin, 11, true, "")

		assert.NoError(t, err)
		assert.Equal(t, model.WithdrawalApproved, req.Status)
	})
}
