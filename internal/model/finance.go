package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount statuses.
const (
	BankAccountActive   = "active"
	BankAccountInactive = "inactive"
)

// BankAccount is a company account shown on the payment page. Only active
// accounts are offered to students.
type BankAccount struct {
	ID                int64     `json:"account_id"`
	BankName          string    `json:"bank_name"`
	AccountNumber     string    `json:"account_number"`
	AccountHolderName string    `json:"account_holder_name"`
	IBAN              string    `json:"iban,omitempty"`
	SwiftCode         string    `json:"swift_code"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Payment statuses.
const (
	PaymentPending     = "pending"
	PaymentProcessing  = "processing"
	PaymentUnderReview = "under_review"
	PaymentCompleted   = "completed"
	PaymentFailed      = "failed"
)

// Payment is a bank-transfer payment for one application, evidenced by an
// uploaded receipt and reviewed by office staff.
type Payment struct {
	ID            int64           `json:"application_payment_id"`
	ApplicationID int64           `json:"application_id"`
	Amount        decimal.Decimal `json:"amount"`
	ReceiptKey    string          `json:"receipt_pdf"`
	Status        string          `json:"payment_status"`
	PaymentDate   time.Time       `json:"payment_date"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ReviewedByID  *int64          `json:"reviewed_by_id,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNote    string          `json:"review_note,omitempty"`
}

// Wallet tracks commission earnings and withdrawals for an agent or HQ
// user. One wallet per user.
type Wallet struct {
	ID                 int64           `json:"id"`
	UserID             int64           `json:"user_id"`
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	UpcomingPayments   decimal.Decimal `json:"upcoming_payments"`
	PendingWithdrawals decimal.Decimal `json:"pending_withdrawals"`
	TotalEarned        decimal.Decimal `json:"total_earned"`
	TotalWithdrawn     decimal.Decimal `json:"total_withdrawn"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Wallet transaction types.
const (
	TxnEarning         = "earning"
	TxnWithdrawal      = "withdrawal"
	TxnBalanceTransfer = "balance_transfer"
)

// Wallet transaction statuses.
const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnCancelled = "cancelled"
)

// WalletTransaction is one movement on a wallet.
type WalletTransaction struct {
	ID            int64           `json:"id"`
	WalletID      int64           `json:"wallet_id"`
	ApplicationID *int64          `json:"application_id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Withdrawal request statuses.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// MinWithdrawalAmount is the smallest withdrawal a wallet owner may request.
var MinWithdrawalAmount = decimal.NewFromInt(100)

// WithdrawalRequest is a pending payout awaiting administrator processing.
type WithdrawalRequest struct {
	ID              int64           `json:"id"`
	WalletID        int64           `json:"wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time       `json:"requested_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	ProcessedByID   *int64          `json:"processed_by_id,omitempty"`
}
