package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// PaymentSQL is the SQL implementation of repository.PaymentRepository.
type PaymentSQL struct {
	db *sql.DB
}

// NewPaymentSQL creates a new PaymentSQL repository.
func NewPaymentSQL(db *sql.DB) *PaymentSQL {
	return &PaymentSQL{db: db}
}

var _ repository.PaymentRepository = (*PaymentSQL)(nil)

const bankAccountColumns = `account_id, bank_name, account_number, account_holder_name, iban, swift_code, status, created_at, updated_at`

func scanBankAccount(row interface{ Scan(...any) error }) (*model.BankAccount, error) {
	var b model.BankAccount
	if err := row.Scan(
		&b.ID,
		&b.BankName,
		&b.AccountNumber,
		&b.AccountHolderName,
		&b.IBAN,
		&b.SwiftCode,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PaymentSQL) CreateBankAccount(ctx context.Context, b *model.BankAccount) (*model.BankAccount, error) {
	query := `INSERT INTO bank_accounts (bank_name, account_number, account_holder_name, iban, swift_code, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		b.BankName, b.AccountNumber, b.AccountHolderName, b.IBAN, b.SwiftCode,
		b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert bank account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert bank account id: %w", err)
	}
	b.ID = id
	return b, nil
}

func (r *PaymentSQL) UpdateBankAccount(ctx context.Context, b *model.BankAccount) error {
	query := `UPDATE bank_accounts SET bank_name = ?, account_number = ?, account_holder_name = ?, iban = ?, swift_code = ?, status = ?, updated_at = ?
WHERE account_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.BankName, b.AccountNumber, b.AccountHolderName, b.IBAN, b.SwiftCode,
		b.Status, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PaymentSQL) ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts`
	var args []any
	if activeOnly {
		query += ` WHERE status = ?`
		args = append(args, model.BankAccountActive)
	}
	query += ` ORDER BY bank_name ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.BankAccount
	for rows.Next() {
		b, err := scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *b)
	}
	return accounts, rows.Err()
}

const paymentColumns = `application_payment_id, application_id, amount, receipt_key, payment_status, payment_date, transaction_id, reviewed_by_id, reviewed_at, review_note`

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime
	var note sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.ApplicationID,
		&p.Amount,
		&p.ReceiptKey,
		&p.Status,
		&p.PaymentDate,
		&p.TransactionID,
		&reviewedBy,
		&reviewedAt,
		&note,
	); err != nil {
		return nil, err
	}
	p.ReviewedByID = idPtr(reviewedBy)
	p.ReviewedAt = timePtr(reviewedAt)
	p.ReviewNote = note.String
	return &p, nil
}

func (r *PaymentSQL) CreatePayment(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	query := `INSERT INTO application_payments (application_id, amount, receipt_key, payment_status, payment_date, transaction_id, reviewed_by_id, reviewed_at, review_note)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.ApplicationID, p.Amount, p.ReceiptKey, p.Status, p.PaymentDate,
		p.TransactionID, nullID(p.ReviewedByID), nullTime(p.ReviewedAt), p.ReviewNote)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert payment id: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *PaymentSQL) UpdatePayment(ctx context.Context, p *model.Payment) error {
	query := `UPDATE application_payments SET amount = ?, receipt_key = ?, payment_status = ?, transaction_id = ?, reviewed_by_id = ?, reviewed_at = ?, review_note = ?
WHERE application_payment_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Amount, p.ReceiptKey, p.Status, p.TransactionID,
		nullID(p.ReviewedByID), nullTime(p.ReviewedAt), p.ReviewNote, p.ID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PaymentSQL) FindPaymentByID(ctx context.Context, id int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM application_payments WHERE application_payment_id = ?`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *PaymentSQL) LatestForApplication(ctx context.Context, applicationID int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM application_payments
WHERE application_id = ? ORDER BY payment_date DESC, application_payment_id DESC LIMIT 1`
	return scanPayment(r.db.QueryRowContext(ctx, query, applicationID))
}

func (r *PaymentSQL) ListPayments(ctx context.Context, status string, pq repository.PageQuery) (*repository.PageResult[model.Payment], error) {
	where := ""
	var args []any
	if status != "" {
		where = ` WHERE payment_status = ?`
		args = append(args, status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM application_payments` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	query := `SELECT ` + paymentColumns + ` FROM application_payments` + where +
		` ORDER BY payment_date DESC, application_payment_id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	items := make([]model.Payment, 0, pq.Limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Payment]{Items: items, Total: total}, nil
}
