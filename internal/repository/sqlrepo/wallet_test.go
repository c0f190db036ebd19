package sqlrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

func walletRows(id, userID int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "current_balance", "upcoming_payments", "pending_withdrawals", "total_earned", "total_withdrawn", "created_at", "updated_at"}).
		AddRow(id, userID, "250.00", "100.00", "0.00", "250.00", "0.00", now, now)
}

func TestWalletSQL_GetOrCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWalletSQL(db)
	ctx := context.Background()

	t.Run("existing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM wallets WHERE user_id = ?").
			WithArgs(int64(5)).
			WillReturnRows(walletRows(1, 5))

		w, err := repo.GetOrCreate(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), w.ID)
		assert.True(t, w.CurrentBalance.Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("created on first use", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM wallets WHERE user_id = ?").
			WithArgs(int64(9)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO wallets").
			WithArgs(int64(9), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(2, 1))

		w, err := repo.GetOrCreate(ctx, 9)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), w.ID)
		assert.True(t, w.CurrentBalance.IsZero())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletSQL_CreditUpcoming(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWalletSQL(db)
	ctx := context.Background()
	amount := decimal.RequireFromString("150.00")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM wallets WHERE user_id = ?").
		WithArgs(int64(5)).
		WillReturnRows(walletRows(1, 5))
	mock.ExpectExec("UPDATE wallets SET upcoming_payments = upcoming_payments \\+").
		WithArgs(amount, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO wallet_transactions").
		WithArgs(int64(1), int64(42), model.TxnEarning, amount, "Commission for application #42", model.TxnPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.CreditUpcoming(ctx, 5, 42, amount, "Commission for application #42")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletSQL_RequestWithdrawal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWalletSQL(db)
	ctx := context.Background()
	amount := decimal.RequireFromString("200.00")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM wallets WHERE user_id = ?").
		WithArgs(int64(5)).
		WillReturnRows(walletRows(1, 5))
	mock.ExpectExec("UPDATE wallets SET current_balance = current_balance -").
		WithArgs(amount, amount, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO withdrawal_requests").
		WithArgs(int64(1), amount, model.WithdrawalPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO wallet_transactions").
		WithArgs(int64(1), nil, model.TxnWithdrawal, amount, "Withdrawal request #11", model.TxnPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	req, err := repo.RequestWithdrawal(ctx, 5, amount)

	assert.NoError(t, err)
	assert.NotNil(t, req)
	assert.Equal(t, int64(11), req.ID)
	assert.Equal(t, model.WithdrawalPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletSQL_ProcessWithdrawal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWalletSQL(db)
	ctx := context.Background()

	requestCols := []string{"id", "wallet_id", "amount", "status", "rejection_reason", "requested_at", "processed_at", "processed_by_id"}

	t.Run("reject refunds balance", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM withdrawal_requests WHERE id = ?").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(requestCols).
				AddRow(11, 1, "200.00", model.WithdrawalPending, nil, time.Now().UTC(), nil, nil))
		mock.ExpectExec("UPDATE wallets SET pending_withdrawals = pending_withdrawals - (.+) current_balance = current_balance \\+").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE withdrawal_requests SET status = ?").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE wallet_transactions SET status = ?").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		req, err := repo.ProcessWithdrawal(ctx, 11, 2, false, "bank details invalid")

		assert.NoError(t, err)
		assert.Equal(t, model.WithdrawalRejected, req.Status)
		assert.Equal(t, "bank details invalid", req.RejectionReason)
		assert.NotNil(t, req.ProcessedAt)
	})

	t.Run("already processed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM withdrawal_requests WHERE id = ?").
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows(requestCols).
				AddRow(12, 1, "50.00", model.WithdrawalApproved, nil, time.Now().UTC(), time.Now().UTC(), 2))
		mock.ExpectRollback()

		req, err := repo.ProcessWithdrawal(ctx, 12, 2, true, "")

		assert.ErrorIs(t, err, repository.ErrWithdrawalProcessed)
		assert.Nil(t, req)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
