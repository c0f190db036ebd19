package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/storage"
)

// MaxDocumentSize is the upload limit for a single application document.
const MaxDocumentSize = 5 << 20

// DefaultDeadlineDays is how long HQ gets to process an approved
// application when the agent doesn't choose a deadline.
const DefaultDeadlineDays = 10

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// transitions is the application status machine. A status maps to the set
// of statuses it may move to.
var transitions = map[string][]string{
	model.StatusDraft:             {model.StatusSubmitted},
	model.StatusSubmitted:         {model.StatusUnderReview, model.StatusApproved, model.StatusRejected},
	model.StatusUnderReview:       {model.StatusDocumentsVerified, model.StatusApproved, model.StatusRejected},
	model.StatusDocumentsVerified: {model.StatusPaymentVerified, model.StatusApproved, model.StatusRejected},
	model.StatusPaymentVerified:   {model.StatusApproved, model.StatusRejected},
	model.StatusApproved:          {model.StatusInProgress},
	model.StatusInProgress:        {model.StatusLetterUploaded},
	model.StatusLetterUploaded:    {model.StatusLetterApproved, model.StatusLetterPending},
	model.StatusLetterPending:     {model.StatusLetterUploaded},
	model.StatusLetterApproved:    {model.StatusJW02Uploaded},
	model.StatusJW02Uploaded:      {model.StatusJW02Approved, model.StatusJW02Pending},
	model.StatusJW02Pending:       {model.StatusJW02Uploaded},
	model.StatusJW02Approved:      {model.StatusComplete},
}

// CanTransition reports whether the status machine allows from → to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DocumentUpload is one multipart file destined for a document slot.
type DocumentUpload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ApplicationDetail bundles everything a detail page needs.
type ApplicationDetail struct {
	Application *model.Application    `json:"application"`
	Scholarship *model.Scholarship    `json:"scholarship"`
	Payment     *model.Payment        `json:"payment,omitempty"`
	Letter      *model.ReviewedUpload `json:"admission_letter,omitempty"`
	JW02        *model.ReviewedUpload `json:"jw02_form,omitempty"`
	History     []model.StatusHistory `json:"history"`
	Progress    Progress              `json:"progress"`
}

// DashboardStats are the per-status counts shown on dashboards.
type DashboardStats struct {
	Pending   int `json:"pending_count"`
	Approved  int `json:"approved_count"`
	Rejected  int `json:"rejected_count"`
	Completed int `json:"completed_count"`
	Draft     int `json:"draft_count"`
}

// ApplicationWithProgress pairs an application with its student progress.
type ApplicationWithProgress struct {
	model.Application
	Progress Progress `json:"progress"`
}

// StudentDashboard is the student's landing payload.
type StudentDashboard struct {
	Applications []ApplicationWithProgress `json:"applications"`
	Stats        DashboardStats            `json:"stats"`
	NeedsAction  int                       `json:"needs_action_count"`
}

// ApplicationListResult is the staff-facing paginated listing.
type ApplicationListResult struct {
	Items []model.Application `json:"data"`
	Total int                 `json:"total"`
}

// ApplicationService implements the application workflow for every role.
// Each transition is validated against the status machine, recorded in the
// history table, and mirrored to the student as a notification.
type ApplicationService interface {
	// Apply creates or updates the student's draft for a scholarship,
	// storing uploaded documents, and submits it when submit is true.
	Apply(ctx context.Context, student *model.User, scholarshipID int64, docs []DocumentUpload, submit bool) (*model.Application, error)
	// Submit moves a complete draft to submitted.
	Submit(ctx context.Context, student *model.User, applicationID int64) (*model.Application, error)
	StudentDashboard(ctx context.Context, studentID int64) (*StudentDashboard, error)

	Get(ctx context.Context, id int64) (*model.Application, error)
	Detail(ctx context.Context, actor *model.User, id int64) (*ApplicationDetail, error)
	List(ctx context.Context, f repository.ApplicationFilter, limit, offset int) (*ApplicationListResult, error)
	Stats(ctx context.Context, f repository.ApplicationFilter) (*DashboardStats, error)

	// Office operations.
	StartReview(ctx context.Context, actor *model.User, id int64) (*model.Application, error)
	VerifyDocuments(ctx context.Context, actor *model.User, id int64) (*model.Application, error)
	// VerifyPayment moves the application to payment_verified once its
	// receipt is approved.
	VerifyPayment(ctx context.Context, actor *model.User, id int64) (*model.Application, error)
	ForwardToAgent(ctx context.Context, actor *model.User, id, agentID int64) (*model.Application, error)

	// Agent decisions.
	Approve(ctx context.Context, actor *model.User, id int64, deadlineDays int) (*model.Application, error)
	Reject(ctx context.Context, actor *model.User, id int64, reason string) (*model.Application, error)

	// HQ processing.
	MarkInProgress(ctx context.Context, actor *model.User, id int64) (*model.Application, error)
	UploadReviewable(ctx context.Context, actor *model.User, id int64, kind string, file DocumentUpload) (*model.ReviewedUpload, error)
	RevisionQueue(ctx context.Context, kind string) ([]model.ReviewedUpload, error)

	// Agent review of HQ uploads.
	ApproveUpload(ctx context.Context, actor *model.User, kind string, uploadID int64) (*model.Application, error)
	RequestRevision(ctx context.Context, actor *model.User, kind string, uploadID int64, note string) (*model.Application, error)
}

type applicationService struct {
	apps         repository.ApplicationRepository
	scholarships repository.ScholarshipRepository
	users        repository.UserRepository
	payments     repository.PaymentRepository
	wallets      repository.WalletRepository
	offices      repository.OfficeRepository
	store        storage.Storage
	notify       Notifier
	now          func() time.Time
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(
	apps repository.ApplicationRepository,
	scholarships repository.ScholarshipRepository,
	users repository.UserRepository,
	payments repository.PaymentRepository,
	wallets repository.WalletRepository,
	offices repository.OfficeRepository,
	store storage.Storage,
	notify Notifier,
) ApplicationService {
	return &applicationService{
		apps:         apps,
		scholarships: scholarships,
		users:        users,
		payments:     payments,
		wallets:      wallets,
		offices:      offices,
		store:        store,
		notify:       notify,
		now:          time.Now,
	}
}

// storeDocument validates and stores one document upload, returning its
// storage key.
func (s *applicationService) storeDocument(ctx context.Context, userID int64, up DocumentUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedDocumentExts[ext] {
		return "", fmt.Errorf("%w: %s must be pdf, jpg, jpeg, or png", ErrInvalidDocument, up.Field)
	}
	if up.Size > MaxDocumentSize {
		return "", fmt.Errorf("%w: %s exceeds the 5 MB limit", ErrInvalidDocument, up.Field)
	}
	if up.Reader == nil {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidDocument, up.Field)
	}

	key := fmt.Sprintf("application_documents/user_%d/%s_%s%s", userID, up.Field, uuid.New().String(), ext)
	_, err := s.store.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
		Metadata:    map[string]string{"original-filename": up.Filename},
	})
	if err != nil {
		return "", fmt.Errorf("store %s: %w", up.Field, err)
	}
	return key, nil
}

// routeOffice picks the office for a new application based on the
// scholarship's city. Routing failures leave the office unset.
func (s *applicationService) routeOffice(ctx context.Context, sch *model.Scholarship) *int64 {
	office, err := s.offices.FindForLocation(ctx, "", sch.City)
	if err != nil {
		return nil
	}
	return &office.ID
}

func (s *applicationService) Apply(ctx context.Context, student *model.User, scholarshipID int64, docs []DocumentUpload, submit bool) (*model.Application, error) {
	sch, err := s.scholarships.FindByID(ctx, scholarshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A second non-draft application for the same scholarship is refused.
	if _, err := s.apps.FindForUser(ctx, student.ID, scholarshipID, false); err == nil {
		return nil, ErrDuplicateApplication
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	app, err := s.apps.FindForUser(ctx, student.ID, scholarshipID, true)
	if errors.Is(err, sql.ErrNoRows) {
		app = &model.Application{
			ScholarshipID: scholarshipID,
			UserID:        student.ID,
			OfficeID:      s.routeOffice(ctx, sch),
			Status:        model.StatusDraft,
			AppliedDate:   s.now().UTC(),
		}
		if app, err = s.apps.Create(ctx, app); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	for _, up := range docs {
		if !validDocumentField(up.Field) {
			return nil, fmt.Errorf("%w: unknown document field %q", ErrInvalidDocument, up.Field)
		}
		key, err := s.storeDocument(ctx, student.ID, up)
		if err != nil {
			return nil, err
		}
		app.Documents.Set(up.Field, key)
	}
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	if submit {
		return s.Submit(ctx, student, app.ID)
	}
	return app, nil
}

func validDocumentField(field string) bool {
	for _, f := range model.DocumentFields {
		if f == field {
			return true
		}
	}
	return false
}

func (s *applicationService) Submit(ctx context.Context, student *model.User, applicationID int64) (*model.Application, error) {
	app, err := s.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != student.ID && student.Role == model.RoleUser {
		return nil, ErrForbidden
	}
	if missing := app.Documents.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocumentsIncomplete, strings.Join(missing, ", "))
	}
	return s.changeStatus(ctx, app, model.StatusSubmitted, &student.ID, "Application submitted")
}

func (s *applicationService) StudentDashboard(ctx context.Context, studentID int64) (*StudentDashboard, error) {
	res, err := s.apps.List(ctx, repository.ApplicationFilter{UserID: studentID}, repository.PageQuery{Limit: 100, Offset: 0})
	if err != nil {
		return nil, err
	}

	dash := &StudentDashboard{Applications: make([]ApplicationWithProgress, 0, len(res.Items))}
	for _, app := range res.Items {
		hasReceipt := false
		if app.Status == model.StatusDocumentsVerified {
			if p, err := s.payments.LatestForApplication(ctx, app.ID); err == nil && p.ReceiptKey != "" {
				hasReceipt = true
			}
		}
		progress := ProgressFor(app.Status, hasReceipt)
		if progress.ActionRequired {
			dash.NeedsAction++
		}
		dash.Applications = append(dash.Applications, ApplicationWithProgress{Application: app, Progress: progress})

		switch app.Status {
		case model.StatusApproved:
			dash.Stats.Approved++
		case model.StatusRejected:
			dash.Stats.Rejected++
		case model.StatusComplete:
			dash.Stats.Completed++
		case model.StatusDraft:
			dash.Stats.Draft++
		default:
			dash.Stats.Pending++
		}
	}
	return dash, nil
}

func (s *applicationService) Get(ctx context.Context, id int64) (*model.Application, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// canView checks role-scoped access to one application.
func canView(actor *model.User, app *model.Application) bool {
	if actor.IsSuperuser {
		return true
	}
	switch actor.Role {
	case model.RoleUser:
		return app.UserID == actor.ID
	case model.RoleAgent:
		return app.AssignedAgentID == nil || *app.AssignedAgentID == actor.ID
	case model.RoleHeadquarters:
		return app.AssignedHQID == nil || *app.AssignedHQID == actor.ID
	case model.RoleOffice:
		return true
	}
	return false
}

func (s *applicationService) Detail(ctx context.Context, actor *model.User, id int64) (*ApplicationDetail, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, app) {
		return nil, ErrForbidden
	}

	d := &ApplicationDetail{Application: app}
	if d.Scholarship, err = s.scholarships.FindByID(ctx, app.ScholarshipID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if p, err := s.payments.LatestForApplication(ctx, app.ID); err == nil {
		d.Payment = p
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if letter, err := s.apps.LatestUpload(ctx, model.UploadKindLetter, app.ID, ""); err == nil {
		d.Letter = letter
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if form, err := s.apps.LatestUpload(ctx, model.UploadKindJW02, app.ID, ""); err == nil {
		d.JW02 = form
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if d.History, err = s.apps.ListHistory(ctx, app.ID); err != nil {
		return nil, err
	}
	d.Progress = ProgressFor(app.Status, d.Payment != nil && d.Payment.ReceiptKey != "")
	return d, nil
}

func (s *applicationService) List(ctx context.Context, f repository.ApplicationFilter, limit, offset int) (*ApplicationListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.apps.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ApplicationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *applicationService) Stats(ctx context.Context, f repository.ApplicationFilter) (*DashboardStats, error) {
	counts, err := s.apps.CountByStatus(ctx, f)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		Approved:  counts[model.StatusApproved],
		Rejected:  counts[model.StatusRejected],
		Completed: counts[model.StatusComplete],
		Draft:     counts[model.StatusDraft],
	}
	for _, status := range inProgressStatuses {
		stats.Pending += counts[status]
	}
	return stats, nil
}

// changeStatus applies one validated transition: it persists the
// application, appends the audit row, and notifies the student.
func (s *applicationService) changeStatus(ctx context.Context, app *model.Application, to string, changedBy *int64, note string) (*model.Application, error) {
	if !CanTransition(app.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, app.Status, to)
	}
	from := app.Status
	now := s.now().UTC()
	app.Status = to
	switch to {
	case model.StatusApproved:
		app.ApprovedDate = &now
	case model.StatusComplete:
		app.CompletedDate = &now
	}
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	if err := s.apps.AddHistory(ctx, &model.StatusHistory{
		ApplicationID: app.ID,
		OldStatus:     from,
		NewStatus:     to,
		ChangedByID:   changedBy,
		Note:          note,
		ChangedAt:     now,
	}); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Application #%d updated", app.ID)
	message := statusMessages[to]
	if message == "" {
		message = fmt.Sprintf("Your application status changed to %s.", to)
	}
	link := fmt.Sprintf("/applications/%d", app.ID)
	if err := s.notify.Notify(ctx, app.UserID, title, message, link); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) StartReview(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, app, model.StatusUnderReview, &actor.ID, "Document review started")
}

func (s *applicationService) VerifyDocuments(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if missing := app.Documents.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocumentsIncomplete, strings.Join(missing, ", "))
	}
	return s.changeStatus(ctx, app, model.StatusDocumentsVerified, &actor.ID, "Documents verified")
}

func (s *applicationService) VerifyPayment(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, app, model.StatusPaymentVerified, &actor.ID, "Payment verified")
}

func (s *applicationService) ForwardToAgent(ctx context.Context, actor *model.User, id, agentID int64) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if agentID == 0 {
		agent, err := s.users.FirstActiveByRole(ctx, model.RoleAgent)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: no active agent available", ErrNotFound)
			}
			return nil, err
		}
		agentID = agent.ID
	} else {
		agent, err := s.users.FindByID(ctx, agentID)
		if err != nil || agent.Role != model.RoleAgent || !agent.IsActive() {
			return nil, fmt.Errorf("%w: agent %d", ErrNotFound, agentID)
		}
	}
	app.AssignedAgentID = &agentID
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	if err := s.notify.Notify(ctx, agentID,
		fmt.Sprintf("Application #%d assigned", app.ID),
		"A new application has been forwarded to you for review.",
		fmt.Sprintf("/agent/applications/%d", app.ID)); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Approve(ctx context.Context, actor *model.User, id int64, deadlineDays int) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if deadlineDays <= 0 {
		deadlineDays = DefaultDeadlineDays
	}

	// Assign the processing HQ user up front so the notification lands.
	hq, err := s.users.FirstActiveByRole(ctx, model.RoleHeadquarters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active headquarters user available", ErrNotFound)
		}
		return nil, err
	}
	deadline := s.now().UTC().AddDate(0, 0, deadlineDays)
	app.AssignedHQID = &hq.ID
	app.Deadline = &deadline

	app, err = s.changeStatus(ctx, app, model.StatusApproved, &actor.ID, "Application approved by agent")
	if err != nil {
		return nil, err
	}
	if err := s.notify.Notify(ctx, hq.ID,
		fmt.Sprintf("Application #%d approved", app.ID),
		"An approved application is ready for university processing.",
		fmt.Sprintf("/hq/applications/%d", app.ID)); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Reject(ctx context.Context, actor *model.User, id int64, reason string) (*model.Application, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	app.RejectionReason = reason
	return s.changeStatus(ctx, app, model.StatusRejected, &actor.ID, reason)
}

func (s *applicationService) MarkInProgress(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	deadline := s.now().UTC().AddDate(0, 0, DefaultDeadlineDays)
	app.Deadline = &deadline
	return s.changeStatus(ctx, app, model.StatusInProgress, &actor.ID, "University application started")
}

// uploadStatus maps a reviewable upload kind to the application status its
// arrival produces.
func uploadStatus(kind string) string {
	if kind == model.UploadKindJW02 {
		return model.StatusJW02Uploaded
	}
	return model.StatusLetterUploaded
}

func (s *applicationService) UploadReviewable(ctx context.Context, actor *model.User, id int64, kind string, file DocumentUpload) (*model.ReviewedUpload, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	target := uploadStatus(kind)
	if !CanTransition(app.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, app.Status, target)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExts[ext] {
		return nil, fmt.Errorf("%w: file must be pdf, jpg, jpeg, or png", ErrInvalidDocument)
	}
	prefix := "admission_letters"
	if kind == model.UploadKindJW02 {
		prefix = "jw02_forms"
	}
	key := fmt.Sprintf("%s/app_%d/%s%s", prefix, app.ID, uuid.New().String(), ext)
	if _, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Filename},
	}); err != nil {
		return nil, fmt.Errorf("store %s: %w", kind, err)
	}

	upload, err := s.apps.CreateUpload(ctx, &model.ReviewedUpload{
		Kind:          kind,
		ApplicationID: app.ID,
		UploadedByID:  &actor.ID,
		FileKey:       key,
		Status:        model.UploadPendingVerification,
		UploadedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.changeStatus(ctx, app, target, &actor.ID, "Uploaded for verification"); err != nil {
		return nil, err
	}
	if app.AssignedAgentID != nil {
		if err := s.notify.Notify(ctx, *app.AssignedAgentID,
			fmt.Sprintf("Application #%d needs review", app.ID),
			"A document has been uploaded and awaits your approval.",
			fmt.Sprintf("/agent/applications/%d", app.ID)); err != nil {
			return nil, err
		}
	}
	return upload, nil
}

func (s *applicationService) RevisionQueue(ctx context.Context, kind string) ([]model.ReviewedUpload, error) {
	return s.apps.ListUploadsByStatus(ctx, kind, model.UploadRevisionRequested)
}

func (s *applicationService) ApproveUpload(ctx context.Context, actor *model.User, kind string, uploadID int64) (*model.Application, error) {
	upload, err := s.apps.FindUploadByID(ctx, kind, uploadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	app, err := s.Get(ctx, upload.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	upload.Status = model.UploadApproved
	upload.ApprovedAt = &now
	upload.ApprovedByID = &actor.ID
	if err := s.apps.UpdateUpload(ctx, upload); err != nil {
		return nil, err
	}

	if kind == model.UploadKindLetter {
		app, err = s.changeStatus(ctx, app, model.StatusLetterApproved, &actor.ID, "Admission letter approved")
		if err != nil {
			return nil, err
		}
		if err := s.creditCommissions(ctx, app, false); err != nil {
			return nil, err
		}
		return app, nil
	}

	// JW02 approval also completes the application and settles commission.
	app, err = s.changeStatus(ctx, app, model.StatusJW02Approved, &actor.ID, "JW02 form approved")
	if err != nil {
		return nil, err
	}
	if err := s.creditCommissions(ctx, app, true); err != nil {
		return nil, err
	}
	return s.changeStatus(ctx, app, model.StatusComplete, &actor.ID, "Application complete")
}

// creditCommissions moves the scholarship's agent and HQ commissions into
// the assigned users' wallets: into upcoming on letter approval, settled
// into balance on JW02 approval.
func (s *applicationService) creditCommissions(ctx context.Context, app *model.Application, settle bool) error {
	sch, err := s.scholarships.FindByID(ctx, app.ScholarshipID)
	if err != nil {
		return err
	}

	move := s.wallets.CreditUpcoming
	if settle {
		move = s.wallets.SettleUpcoming
	}
	if app.AssignedAgentID != nil && sch.AgentCommission.IsPositive() {
		desc := fmt.Sprintf("Commission for application #%d (%s)", app.ID, sch.Name)
		if err := move(ctx, *app.AssignedAgentID, app.ID, sch.AgentCommission, desc); err != nil {
			return fmt.Errorf("agent commission: %w", err)
		}
	}
	if app.AssignedHQID != nil && sch.HQCommission.IsPositive() {
		desc := fmt.Sprintf("Commission for application #%d (%s)", app.ID, sch.Name)
		if err := move(ctx, *app.AssignedHQID, app.ID, sch.HQCommission, desc); err != nil {
			return fmt.Errorf("hq commission: %w", err)
		}
	}
	return nil
}

// pendingStatus maps an upload kind to the revision-pending application
// status.
func pendingStatus(kind string) string {
	if kind == model.UploadKindJW02 {
		return model.StatusJW02Pending
	}
	return model.StatusLetterPending
}

func (s *applicationService) RequestRevision(ctx context.Context, actor *model.User, kind string, uploadID int64, note string) (*model.Application, error) {
	if strings.TrimSpace(note) == "" {
		return nil, ErrReasonRequired
	}
	upload, err := s.apps.FindUploadByID(ctx, kind, uploadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	app, err := s.Get(ctx, upload.ApplicationID)
	if err != nil {
		return nil, err
	}

	upload.Status = model.UploadRevisionRequested
	upload.RevisionNote = note
	if err := s.apps.UpdateUpload(ctx, upload); err != nil {
		return nil, err
	}

	app, err = s.changeStatus(ctx, app, pendingStatus(kind), &actor.ID, note)
	if err != nil {
		return nil, err
	}
	if app.AssignedHQID != nil {
		if err := s.notify.Notify(ctx, *app.AssignedHQID,
			fmt.Sprintf("Revision requested for application #%d", app.ID),
			note,
			fmt.Sprintf("/hq/applications/%d", app.ID)); err != nil {
			return nil, err
		}
	}
	return app, nil
}
