package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/storage"
)

// BankAccountInput holds the fields of a bank account create/update.
type BankAccountInput struct {
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	IBAN              string `json:"iban"`
	SwiftCode         string `json:"swift_code"`
	Status            string `json:"status"`
}

// PaymentPage is what the student payment screen needs: the amount due
// and the accounts to transfer to.
type PaymentPage struct {
	Application *model.Application  `json:"application"`
	Amount      decimal.Decimal     `json:"amount"`
	Accounts    []model.BankAccount `json:"bank_accounts"`
	Payment     *model.Payment      `json:"payment,omitempty"`
}

// PaymentService implements bank accounts and application payments.
// Receipt review moves the application forward on approval.
type PaymentService interface {
	CreateBankAccount(ctx context.Context, in BankAccountInput) (*model.BankAccount, error)
	UpdateBankAccount(ctx context.Context, id int64, in BankAccountInput) (*model.BankAccount, error)
	ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error)

	// Page returns the payment screen data for a student's application.
	Page(ctx context.Context, student *model.User, applicationID int64) (*PaymentPage, error)
	// SubmitReceipt stores the uploaded receipt and marks the payment
	// under review.
	SubmitReceipt(ctx context.Context, student *model.User, applicationID int64, file DocumentUpload) (*model.Payment, error)
	// Review approves or rejects a payment; approval moves the
	// application to payment_verified.
	Review(ctx context.Context, actor *model.User, paymentID int64, approve bool, note string) (*model.Payment, error)
	List(ctx context.Context, status string, limit, offset int) (*repository.PageResult[model.Payment], error)
}

type paymentService struct {
	payments repository.PaymentRepository
	apps     ApplicationService
	appsRepo repository.ApplicationRepository
	schRepo  repository.ScholarshipRepository
	store    storage.Storage
	notify   Notifier
	now      func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(
	payments repository.PaymentRepository,
	apps ApplicationService,
	appsRepo repository.ApplicationRepository,
	schRepo repository.ScholarshipRepository,
	store storage.Storage,
	notify Notifier,
) PaymentService {
	return &paymentService{
		payments: payments,
		apps:     apps,
		appsRepo: appsRepo,
		schRepo:  schRepo,
		store:    store,
		notify:   notify,
		now:      time.Now,
	}
}

func (s *paymentService) CreateBankAccount(ctx context.Context, in BankAccountInput) (*model.BankAccount, error) {
	if in.BankName == "" || in.AccountNumber == "" || in.AccountHolderName == "" {
		return nil, fmt.Errorf("%w: bank name, account number, and holder name", ErrMissingFields)
	}
	if in.Status == "" {
		in.Status = model.BankAccountActive
	}
	now := s.now().UTC()
	return s.payments.CreateBankAccount(ctx, &model.BankAccount{
		BankName:          in.BankName,
		AccountNumber:     in.AccountNumber,
		AccountHolderName: in.AccountHolderName,
		IBAN:              in.IBAN,
		SwiftCode:         in.SwiftCode,
		Status:            in.Status,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

func (s *paymentService) UpdateBankAccount(ctx context.Context, id int64, in BankAccountInput) (*model.BankAccount, error) {
	b := &model.BankAccount{
		ID:                id,
		BankName:          in.BankName,
		AccountNumber:     in.AccountNumber,
		AccountHolderName: in.AccountHolderName,
		IBAN:              in.IBAN,
		SwiftCode:         in.SwiftCode,
		Status:            in.Status,
		UpdatedAt:         s.now().UTC(),
	}
	if err := s.payments.UpdateBankAccount(ctx, b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *paymentService) ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error) {
	return s.payments.ListBankAccounts(ctx, activeOnly)
}

func (s *paymentService) Page(ctx context.Context, student *model.User, applicationID int64) (*PaymentPage, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != student.ID && student.Role == model.RoleUser {
		return nil, ErrForbidden
	}

	sch, err := s.schRepo.FindByID(ctx, app.ScholarshipID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.payments.ListBankAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	page := &PaymentPage{Application: app, Amount: sch.Price, Accounts: accounts}
	if p, err := s.payments.LatestForApplication(ctx, app.ID); err == nil {
		page.Payment = p
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return page, nil
}

func (s *paymentService) SubmitReceipt(ctx context.Context, student *model.User, applicationID int64, file DocumentUpload) (*model.Payment, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != student.ID && student.Role == model.RoleUser {
		return nil, ErrForbidden
	}
	if app.Status != model.StatusDocumentsVerified {
		return nil, fmt.Errorf("%w: payment is only accepted after documents are verified", ErrInvalidTransition)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExts[ext] {
		return nil, fmt.Errorf("%w: receipt must be pdf, jpg, jpeg, or png", ErrInvalidDocument)
	}
	if file.Size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: receipt exceeds the 5 MB limit", ErrInvalidDocument)
	}
	key := fmt.Sprintf("receipts/app_%d/%s%s", app.ID, uuid.New().String(), ext)
	if _, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Filename},
	}); err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	sch, err := s.schRepo.FindByID(ctx, app.ScholarshipID)
	if err != nil {
		return nil, err
	}

	// Reuse an open payment row when the student retries.
	p, err := s.payments.LatestForApplication(ctx, app.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil && p.Status != model.PaymentCompleted {
		p.ReceiptKey = key
		p.Status = model.PaymentUnderReview
		if err := s.payments.UpdatePayment(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	return s.payments.CreatePayment(ctx, &model.Payment{
		ApplicationID: app.ID,
		Amount:        sch.Price,
		ReceiptKey:    key,
		Status:        model.PaymentUnderReview,
		PaymentDate:   s.now().UTC(),
	})
}

func (s *paymentService) Review(ctx context.Context, actor *model.User, paymentID int64, approve bool, note string) (*model.Payment, error) {
	p, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	p.ReviewedByID = &actor.ID
	p.ReviewedAt = &now
	p.ReviewNote = note
	if approve {
		p.Status = model.PaymentCompleted
	} else {
		p.Status = model.PaymentFailed
	}
	if err := s.payments.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	app, err := s.apps.Get(ctx, p.ApplicationID)
	if err != nil {
		return nil, err
	}
	if approve {
		if _, err := s.apps.VerifyPayment(ctx, actor, app.ID); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err := s.notify.Notify(ctx, app.UserID,
		fmt.Sprintf("Payment for application #%d rejected", app.ID),
		"Your payment could not be verified. Please upload a new receipt.",
		fmt.Sprintf("/applications/%d/payment", app.ID)); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, status string, limit, offset int) (*repository.PageResult[model.Payment], error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.payments.ListPayments(ctx, status, repository.PageQuery{Limit: limit, Offset: offset})
}
