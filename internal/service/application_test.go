package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
	repoMocks "dfseducation/internal/repository/mocks"
	storeMocks "dfseducation/internal/storage/mocks"
)

type appServiceMocks struct {
	apps         *repoMocks.MockApplicationRepository
	scholarships *repoMocks.MockScholarshipRepository
	users        *repoMocks.MockUserRepository
	payments     *repoMocks.MockPaymentRepository
	wallets      *repoMocks.MockWalletRepository
	offices      *repoMocks.MockOfficeRepository
	store        *storeMocks.MockStorage
	notify       *notifierStub
}

// notifierStub records notifications without touching mail or the DB.
type notifierStub struct {
	sent []string
}

func (n *notifierStub) Notify(ctx context.Context, userID int64, title, message, link string) error {
	n.sent = append(n.sent, title)
	return nil
}

func (n *notifierStub) List(ctx context.Context, userID int64, limit, offset int) (*NotificationListResult, error) {
	return &NotificationListResult{}, nil
}

func (n *notifierStub) MarkRead(ctx context.Context, id, userID int64) error { return nil }

func (n *notifierStub) MarkAllRead(ctx context.Context, userID int64) (int64, error) { return 0, nil }

func newAppServiceForTest() (ApplicationService, *appServiceMocks) {
	m := &appServiceMocks{
		apps:         new(repoMocks.MockApplicationRepository),
		scholarships: new(repoMocks.MockScholarshipRepository),
		users:        new(repoMocks.MockUserRepository),
		payments:     new(repoMocks.MockPaymentRepository),
		wallets:      new(repoMocks.MockWalletRepository),
		offices:      new(repoMocks.MockOfficeRepository),
		store:        new(storeMocks.MockStorage),
		notify:       &notifierStub{},
	}
	svc := NewApplicationService(m.apps, m.scholarships, m.users, m.payments, m.wallets, m.offices, m.store, m.notify)
	return svc, m
}

var student = &model.User{ID: 5, Username: "student1", Role: model.RoleUser, Status: model.UserActive}
var agent = &model.User{ID: 3, Username: "agent1", Role: model.RoleAgent, Status: model.UserActive}
var hqUser = &model.User{ID: 8, Username: "hq1", Role: model.RoleHeadquarters, Status: model.UserActive}

func completeDocs() model.Documents {
	var d model.Documents
	for _, f := range model.DocumentFields {
		d.Set(f, "application_documents/user_5/"+f+".pdf")
	}
	return d
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete documents are refused", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.apps.On("FindByID", ctx, int64(1)).Return(&model.Application{
			ID: 1, UserID: 5, Status: model.StatusDraft,
		}, nil)

		_, err := svc.Submit(ctx, student, 1)
		assert.ErrorIs(t, err, ErrDocumentsIncomplete)
		assert.Contains(t, err.Error(), "passport")
	})

	t.Run("complete draft submits with history and notification", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		app := &model.Application{ID: 1, UserID: 5, Status: model.StatusDraft, Documents: completeDocs()}

		m.apps.On("FindByID", ctx, int64(1)).Return(app, nil)
		m.apps.On("Update", ctx, mock.MatchedBy(func(a *model.Application) bool {
			return a.Status == model.StatusSubmitted
		})).Return(nil)
		m.apps.On("AddHistory", ctx, mock.MatchedBy(func(h *model.StatusHistory) bool {
			return h.OldStatus == model.StatusDraft && h.NewStatus == model.StatusSubmitted
		})).Return(nil)

		got, err := svc.Submit(ctx, student, 1)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSubmitted, got.Status)
		assert.Len(t, m.notify.sent, 1)
		m.apps.AssertExpectations(t)
	})

	t.Run("another student's application is forbidden", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.apps.On("FindByID", ctx, int64(1)).Return(&model.Application{ID: 1, UserID: 99, Status: model.StatusDraft}, nil)

		_, err := svc.Submit(ctx, student, 1)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestApplicationService_Approve(t *testing.T) {
	ctx := context.Background()
	svc, m := newAppServiceForTest()

	app := &model.Application{ID: 1, UserID: 5, Status: model.StatusPaymentVerified}
	m.apps.On("FindByID", ctx, int64(1)).Return(app, nil)
	m.users.On("FirstActiveByRole", ctx, model.RoleHeadquarters).Return(hqUser, nil)
	m.apps.On("Update", ctx, mock.MatchedBy(func(a *model.Application) bool {
		return a.Status == model.StatusApproved &&
			a.AssignedHQID != nil && *a.AssignedHQID == 8 &&
			a.Deadline != nil && a.ApprovedDate != nil
	})).Return(nil)
	m.apps.On("AddHistory", ctx, mock.Anything).Return(nil)

	got, err := svc.Approve(ctx, agent, 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	// Student status notification plus HQ assignment notice.
	assert.Len(t, m.notify.sent, 2)
	m.apps.AssertExpectations(t)
}

func TestApplicationService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("reason required", func(t *testing.T) {
		svc, _ := newAppServiceForTest()
		_, err := svc.Reject(ctx, agent, 1, "  ")
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("stores the reason", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.apps.On("FindByID", ctx, int64(1)).Return(&model.Application{ID: 1, UserID: 5, Status: model.StatusSubmitted}, nil)
		m.apps.On("Update", ctx, mock.MatchedBy(func(a *model.Application) bool {
			return a.Status == model.StatusRejected && a.RejectionReason == "missing transcript"
		})).Return(nil)
		m.apps.On("AddHistory", ctx, mock.Anything).Return(nil)

		got, err := svc.Reject(ctx, agent, 1, "missing transcript")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, got.Status)
	})
}

func TestApplicationService_ApproveUpload(t *testing.T) {
	ctx := context.Background()
	agentID, hqID := agent.ID, hqUser.ID

	t.Run("letter approval credits upcoming commissions", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		app := &model.Application{
			ID: 1, UserID: 5, ScholarshipID: 2,
			Status:          model.StatusLetterUploaded,
			AssignedAgentID: &agentID,
			AssignedHQID:    &hqID,
		}
		sch := &model.Scholarship{
			ID: 2, Name: "Tsinghua CS",
			AgentCommission: decimal.RequireFromString("150.00"),
			HQCommission:    decimal.RequireFromString("100.00"),
		}

		m.apps.On("FindUploadByID", ctx, model.UploadKindLetter, int64(4)).Return(&model.ReviewedUpload{
			ID: 4, Kind: model.UploadKindLetter, ApplicationID: 1, Status: model.UploadPendingVerification,
		}, nil)
		m.apps.On("FindByID", ctx, int64(1)).Return(app, nil)
		m.apps.On("UpdateUpload", ctx, mock.MatchedBy(func(u *model.ReviewedUpload) bool {
			return u.Status == model.UploadApproved && u.ApprovedByID != nil && *u.ApprovedByID == agentID
		})).Return(nil)
		m.apps.On("Update", ctx, mock.Anything).Return(nil)
		m.apps.On("AddHistory", ctx, mock.Anything).Return(nil)
		m.scholarships.On("FindByID", ctx, int64(2)).Return(sch, nil)
		m.wallets.On("CreditUpcoming", ctx, agentID, int64(1), sch.AgentCommission, mock.Anything).Return(nil)
		m.wallets.On("CreditUpcoming", ctx, hqID, int64(1), sch.HQCommission, mock.Anything).Return(nil)

		got, err := svc.ApproveUpload(ctx, agent, model.UploadKindLetter, 4)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusLetterApproved, got.Status)
		m.wallets.AssertExpectations(t)
	})

	t.Run("jw02 approval settles commissions and completes", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		app := &model.Application{
			ID: 1, UserID: 5, ScholarshipID: 2,
			Status:          model.StatusJW02Uploaded,
			AssignedAgentID: &agentID,
			AssignedHQID:    &hqID,
		}
		sch := &model.Scholarship{
			ID: 2, Name: "Tsinghua CS",
			AgentCommission: decimal.RequireFromString("150.00"),
			HQCommission:    decimal.RequireFromString("100.00"),
		}

		m.apps.On("FindUploadByID", ctx, model.UploadKindJW02, int64(6)).Return(&model.ReviewedUpload{
			ID: 6, Kind: model.UploadKindJW02, ApplicationID: 1, Status: model.UploadPendingVerification,
		}, nil)
		m.apps.On("FindByID", ctx, int64(1)).Return(app, nil)
		m.apps.On("UpdateUpload", ctx, mock.Anything).Return(nil)
		m.apps.On("Update", ctx, mock.Anything).Return(nil)
		m.apps.On("AddHistory", ctx, mock.Anything).Return(nil)
		m.scholarships.On("FindByID", ctx, int64(2)).Return(sch, nil)
		m.wallets.On("SettleUpcoming", ctx, agentID, int64(1), sch.AgentCommission, mock.Anything).Return(nil)
		m.wallets.On("SettleUpcoming", ctx, hqID, int64(1), sch.HQCommission, mock.Anything).Return(nil)

		got, err := svc.ApproveUpload(ctx, agent, model.UploadKindJW02, 6)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusComplete, got.Status)
		assert.NotNil(t, got.CompletedDate)
		m.wallets.AssertExpectations(t)
	})

	t.Run("missing upload", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.apps.On("FindUploadByID", ctx, model.UploadKindLetter, int64(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.ApproveUpload(ctx, agent, model.UploadKindLetter, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestApplicationService_RequestRevision(t *testing.T) {
	ctx := context.Background()

	t.Run("note required", func(t *testing.T) {
		svc, _ := newAppServiceForTest()
		_, err := svc.RequestRevision(ctx, agent, model.UploadKindLetter, 4, "")
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("marks the upload and parks the application", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		hqID := hqUser.ID
		app := &model.Application{ID: 1, UserID: 5, Status: model.StatusLetterUploaded, AssignedHQID: &hqID}

		m.apps.On("FindUploadByID", ctx, model.UploadKindLetter, int64(4)).Return(&model.ReviewedUpload{
			ID: 4, Kind: model.UploadKindLetter, ApplicationID: 1, Status: model.UploadPendingVerification,
		}, nil)
		m.apps.On("FindByID", ctx, int64(1)).Return(app, nil)
		m.apps.On("UpdateUpload", ctx, mock.MatchedBy(func(u *model.ReviewedUpload) bool {
			return u.Status == model.UploadRevisionRequested && u.RevisionNote == "wrong name on letter"
		})).Return(nil)
		m.apps.On("Update", ctx, mock.Anything).Return(nil)
		m.apps.On("AddHistory", ctx, mock.Anything).Return(nil)

		got, err := svc.RequestRevision(ctx, agent, model.UploadKindLetter, 4, "wrong name on letter")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusLetterPending, got.Status)
		// Student notice plus HQ revision notice.
		assert.Len(t, m.notify.sent, 2)
	})
}

func TestApplicationService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate application refused", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.scholarships.On("FindByID", ctx, int64(2)).Return(&model.Scholarship{ID: 2}, nil)
		m.apps.On("FindForUser", ctx, int64(5), int64(2), false).Return(&model.Application{ID: 7, Status: model.StatusSubmitted}, nil)

		_, err := svc.Apply(ctx, student, 2, nil, false)
		assert.ErrorIs(t, err, ErrDuplicateApplication)
	})

	t.Run("unknown scholarship", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.scholarships.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)

		_, err := svc.Apply(ctx, student, 404, nil, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects oversized document", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.scholarships.On("FindByID", ctx, int64(2)).Return(&model.Scholarship{ID: 2, City: "Beijing"}, nil)
		m.apps.On("FindForUser", ctx, int64(5), int64(2), false).Return(nil, sql.ErrNoRows)
		m.apps.On("FindForUser", ctx, int64(5), int64(2), true).Return(&model.Application{ID: 1, UserID: 5, Status: model.StatusDraft}, nil)

		_, err := svc.Apply(ctx, student, 2, []DocumentUpload{{
			Field:    "passport",
			Filename: "passport.pdf",
			Size:     MaxDocumentSize + 1,
			Reader:   strings.NewReader("x"),
		}}, false)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Contains(t, err.Error(), "5 MB")
	})

	t.Run("rejects wrong extension", func(t *testing.T) {
		svc, m := newAppServiceForTest()
		m.scholarships.On("FindByID", ctx, int64(2)).Return(&model.Scholarship{ID: 2}, nil)
		m.apps.On("FindForUser", ctx, int64(5), int64(2), false).Return(nil, sql.ErrNoRows)
		m.apps.On("FindForUser", ctx, int64(5), int64(2), true).Return(&model.Application{ID: 1, UserID: 5, Status: model.StatusDraft}, nil)

		_, err := svc.Apply(ctx, student, 2, []DocumentUpload{{
			Field:    "photo",
			Filename: "photo.gif",
			Size:     100,
			Reader:   strings.NewReader("x"),
		}}, false)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})
}
