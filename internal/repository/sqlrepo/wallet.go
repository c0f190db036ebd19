package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// WalletSQL is the SQL implementation of repository.WalletRepository.
// The commission and withdrawal movements touch several tables, so they run
// inside one database transaction.
type WalletSQL struct {
	db  *sql.DB
	now func() time.Time
}

// NewWalletSQL creates a new WalletSQL repository.
func NewWalletSQL(db *sql.DB) *WalletSQL {
	return &WalletSQL{db: db, now: time.Now}
}

var _ repository.WalletRepository = (*WalletSQL)(nil)

const walletColumns = `id, user_id, current_balance, upcoming_payments, pending_withdrawals, total_earned, total_withdrawn, created_at, updated_at`

func scanWallet(row interface{ Scan(...any) error }) (*model.Wallet, error) {
	var w model.Wallet
	if err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.CurrentBalance,
		&w.UpcomingPayments,
		&w.PendingWithdrawals,
		&w.TotalEarned,
		&w.TotalWithdrawn,
		&w.CreatedAt,
		&w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletSQL) GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = ?`
	w, err := scanWallet(r.db.QueryRowContext(ctx, query, userID))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find wallet: %w", err)
	}

	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO wallets (user_id, created_at, updated_at) VALUES (?, ?, ?)`,
		userID, now, now)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create wallet id: %w", err)
	}
	zero := decimal.Zero
	return &model.Wallet{
		ID:                 id,
		UserID:             userID,
		CurrentBalance:     zero,
		UpcomingPayments:   zero,
		PendingWithdrawals: zero,
		TotalEarned:        zero,
		TotalWithdrawn:     zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// withTx runs fn in a transaction, rolling back on error.
func (r *WalletSQL) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func walletForUserTx(ctx context.Context, tx *sql.Tx, userID int64) (*model.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = ?`
	w, err := scanWallet(tx.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("find wallet for user %d: %w", userID, err)
	}
	return w, nil
}

func insertTransactionTx(ctx context.Context, tx *sql.Tx, t *model.WalletTransaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, application_id, type, amount, description, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.WalletID, nullID(t.ApplicationID), t.Type, t.Amount, t.Description, t.Status, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

func (r *WalletSQL) CreditUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error {
	now := r.now().UTC()
	return r.withTx(ctx, func(tx *sql.Tx) error {
		w, err := walletForUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET upcoming_payments = upcoming_payments + ?, updated_at = ? WHERE id = ?`,
			amount, now, w.ID); err != nil {
			return fmt.Errorf("credit upcoming: %w", err)
		}
		return insertTransactionTx(ctx, tx, &model.WalletTransaction{
			WalletID:      w.ID,
			ApplicationID: &applicationID,
			Type:          model.TxnEarning,
			Amount:        amount,
			Description:   description,
			Status:        model.TxnPending,
			CreatedAt:     now,
		})
	})
}

func (r *WalletSQL) SettleUpcoming(ctx context.Context, userID, applicationID int64, amount decimal.Decimal, description string) error {
	now := r.now().UTC()
	return r.withTx(ctx, func(tx *sql.Tx) error {
		w, err := walletForUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET upcoming_payments = upcoming_payments - ?, current_balance = current_balance + ?, total_earned = total_earned + ?, updated_at = ?
WHERE id = ?`,
			amount, amount, amount, now, w.ID); err != nil {
			return fmt.Errorf("settle upcoming: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallet_transactions SET status = ? WHERE wallet_id = ? AND application_id = ? AND type = ? AND status = ?`,
			model.TxnCompleted, w.ID, applicationID, model.TxnEarning, model.TxnPending); err != nil {
			return fmt.Errorf("complete earning transactions: %w", err)
		}
		return insertTransactionTx(ctx, tx, &model.WalletTransaction{
			WalletID:      w.ID,
			ApplicationID: &applicationID,
			Type:          model.TxnBalanceTransfer,
			Amount:        amount,
			Description:   description,
			Status:        model.TxnCompleted,
			CreatedAt:     now,
		})
	})
}

func (r *WalletSQL) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	now := r.now().UTC()
	var req *model.WithdrawalRequest
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		w, err := walletForUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET current_balance = current_balance - ?, pending_withdrawals = pending_withdrawals + ?, updated_at = ? WHERE id = ?`,
			amount, amount, now, w.ID); err != nil {
			return fmt.Errorf("reserve withdrawal: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO withdrawal_requests (wallet_id, amount, status, requested_at) VALUES (?, ?, ?, ?)`,
			w.ID, amount, model.WithdrawalPending, now)
		if err != nil {
			return fmt.Errorf("insert withdrawal request: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert withdrawal request id: %w", err)
		}
		if err := insertTransactionTx(ctx, tx, &model.WalletTransaction{
			WalletID:    w.ID,
			Type:        model.TxnWithdrawal,
			Amount:      amount,
			Description: fmt.Sprintf("Withdrawal request #%d", id),
			Status:      model.TxnPending,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		req = &model.WithdrawalRequest{
			ID:          id,
			WalletID:    w.ID,
			Amount:      amount,
			Status:      model.WithdrawalPending,
			RequestedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *WalletSQL) ProcessWithdrawal(ctx context.Context, requestID, processedBy int64, approve bool, reason string) (*model.WithdrawalRequest, error) {
	now := r.now().UTC()
	var req *model.WithdrawalRequest
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		found, err := scanWithdrawal(tx.QueryRowContext(ctx,
			`SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = ?`, requestID))
		if err != nil {
			return fmt.Errorf("find withdrawal request: %w", err)
		}
		if found.Status != model.WithdrawalPending {
			return repository.ErrWithdrawalProcessed
		}

		status := model.WithdrawalApproved
		walletUpdate := `UPDATE wallets SET pending_withdrawals = pending_withdrawals - ?, total_withdrawn = total_withdrawn + ?, updated_at = ? WHERE id = ?`
		txnStatus := model.TxnCompleted
		if !approve {
			status = model.WithdrawalRejected
			walletUpdate = `UPDATE wallets SET pending_withdrawals = pending_withdrawals - ?, current_balance = current_balance + ?, updated_at = ? WHERE id = ?`
			txnStatus = model.TxnCancelled
		}

		if _, err := tx.ExecContext(ctx, walletUpdate, found.Amount, found.Amount, now, found.WalletID); err != nil {
			return fmt.Errorf("settle withdrawal: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE withdrawal_requests SET status = ?, rejection_reason = ?, processed_at = ?, processed_by_id = ? WHERE id = ?`,
			status, reason, now, processedBy, requestID); err != nil {
			return fmt.Errorf("update withdrawal request: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallet_transactions SET status = ? WHERE wallet_id = ? AND type = ? AND status = ? AND description = ?`,
			txnStatus, found.WalletID, model.TxnWithdrawal, model.TxnPending,
			fmt.Sprintf("Withdrawal request #%d", requestID)); err != nil {
			return fmt.Errorf("settle withdrawal transaction: %w", err)
		}

		found.Status = status
		found.RejectionReason = reason
		found.ProcessedAt = &now
		found.ProcessedByID = &processedBy
		req = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

const withdrawalColumns = `id, wallet_id, amount, status, rejection_reason, requested_at, processed_at, processed_by_id`

func scanWithdrawal(row interface{ Scan(...any) error }) (*model.WithdrawalRequest, error) {
	var w model.WithdrawalRequest
	var reason sql.NullString
	var processedAt sql.NullTime
	var processedBy sql.NullInt64
	if err := row.Scan(
		&w.ID,
		&w.WalletID,
		&w.Amount,
		&w.Status,
		&reason,
		&w.RequestedAt,
		&processedAt,
		&processedBy,
	); err != nil {
		return nil, err
	}
	w.RejectionReason = reason.String
	w.ProcessedAt = timePtr(processedAt)
	w.ProcessedByID = idPtr(processedBy)
	return &w, nil
}

func (r *WalletSQL) FindWithdrawalByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = ?`
	return scanWithdrawal(r.db.QueryRowContext(ctx, query, id))
}

func (r *WalletSQL) ListWithdrawals(ctx context.Context, walletID int64) ([]model.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE wallet_id = ? ORDER BY requested_at DESC, id DESC`
	return r.queryWithdrawals(ctx, query, walletID)
}

func (r *WalletSQL) ListPendingWithdrawals(ctx context.Context) ([]model.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE status = ? ORDER BY requested_at ASC, id ASC`
	return r.queryWithdrawals(ctx, query, model.WithdrawalPending)
}

func (r *WalletSQL) queryWithdrawals(ctx context.Context, query string, args ...any) ([]model.WithdrawalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal requests: %w", err)
	}
	defer rows.Close()

	var requests []model.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *w)
	}
	return requests, rows.Err()
}

const transactionColumns = `id, wallet_id, application_id, type, amount, description, status, created_at`

func (r *WalletSQL) ListTransactions(ctx context.Context, walletID int64, pq repository.PageQuery) (*repository.PageResult[model.WalletTransaction], error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallet_transactions WHERE wallet_id = ?`, walletID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count wallet transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions
WHERE wallet_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, walletID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	items := make([]model.WalletTransaction, 0, pq.Limit)
	for rows.Next() {
		var t model.WalletTransaction
		var appID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.WalletID, &appID, &t.Type, &t.Amount, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.ApplicationID = idPtr(appID)
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.WalletTransaction]{Items: items, Total: total}, nil
}
