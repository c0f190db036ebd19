package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Validate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID int64, in service.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	args := m.Called(ctx, userID, current, next)
	return args.Error(0)
}

func (m *MockAuthService) CreateAdmin(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ClearExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) ListUsers(ctx context.Context, role string, limit, offset int) (*repository.PageResult[model.User], error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.User]), args.Error(1)
}

type MockScholarshipService struct {
	mock.Mock
}

func (m *MockScholarshipService) Create(ctx context.Context, in service.ScholarshipInput) (*model.Scholarship, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scholarship), args.Error(1)
}

func (m *MockScholarshipService) Update(ctx context.Context, id int64, in service.ScholarshipInput) (*model.Scholarship, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scholarship), args.Error(1)
}

func (m *MockScholarshipService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScholarshipService) Get(ctx context.Context, id int64) (*model.Scholarship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scholarship), args.Error(1)
}

func (m *MockScholarshipService) List(ctx context.Context, f repository.ScholarshipFilter, limit, offset int) (*service.ScholarshipListResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScholarshipListResult), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, student *model.User, scholarshipID int64, docs []service.DocumentUpload, submit bool) (*model.Application, error) {
	args := m.Called(ctx, student, scholarshipID, docs, submit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Submit(ctx context.Context, student *model.User, applicationID int64) (*model.Application, error) {
	args := m.Called(ctx, student, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) StudentDashboard(ctx context.Context, studentID int64) (*service.StudentDashboard, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StudentDashboard), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, id int64) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Detail(ctx context.Context, actor *model.User, id int64) (*service.ApplicationDetail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationDetail), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, f repository.ApplicationFilter, limit, offset int) (*service.ApplicationListResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationListResult), args.Error(1)
}

func (m *MockApplicationService) Stats(ctx context.Context, f repository.ApplicationFilter) (*service.DashboardStats, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockApplicationService) StartReview(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) VerifyDocuments(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) VerifyPayment(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) ForwardToAgent(ctx context.Context, actor *model.User, id, agentID int64) (*model.Application, error) {
	args := m.Called(ctx, actor, id, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Approve(ctx context.Context, actor *model.User, id int64, deadlineDays int) (*model.Application, error) {
	args := m.Called(ctx, actor, id, deadlineDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Reject(ctx context.Context, actor *model.User, id int64, reason string) (*model.Application, error) {
	args := m.Called(ctx, actor, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) MarkInProgress(ctx context.Context, actor *model.User, id int64) (*model.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) UploadReviewable(ctx context.Context, actor *model.User, id int64, kind string, file service.DocumentUpload) (*model.ReviewedUpload, error) {
	args := m.Called(ctx, actor, id, kind, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewedUpload), args.Error(1)
}

func (m *MockApplicationService) RevisionQueue(ctx context.Context, kind string) ([]model.ReviewedUpload, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewedUpload), args.Error(1)
}

func (m *MockApplicationService) ApproveUpload(ctx context.Context, actor *model.User, kind string, uploadID int64) (*model.Application, error) {
	args := m.Called(ctx, actor, kind, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) RequestRevision(ctx context.Context, actor *model.User, kind string, uploadID int64, note string) (*model.Application, error) {
	args := m.Called(ctx, actor, kind, uploadID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateBankAccount(ctx context.Context, in service.BankAccountInput) (*model.BankAccount, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BankAccount), args.Error(1)
}

func (m *MockPaymentService) UpdateBankAccount(ctx context.Context, id int64, in service.BankAccountInput) (*model.BankAccount, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BankAccount), args.Error(1)
}

func (m *MockPaymentService) ListBankAccounts(ctx context.Context, activeOnly bool) ([]model.BankAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BankAccount), args.Error(1)
}

func (m *MockPaymentService) Page(ctx context.Context, student *model.User, applicationID int64) (*service.PaymentPage, error) {
	args := m.Called(ctx, student, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentPage), args.Error(1)
}

func (m *MockPaymentService) SubmitReceipt(ctx context.Context, student *model.User, applicationID int64, file service.DocumentUpload) (*model.Payment, error) {
	args := m.Called(ctx, student, applicationID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentService) Review(ctx context.Context, actor *model.User, paymentID int64, approve bool, note string) (*model.Payment, error) {
	args := m.Called(ctx, actor, paymentID, approve, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, status string, limit, offset int) (*repository.PageResult[model.Payment], error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Payment]), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Overview(ctx context.Context, userID int64) (*service.WalletOverview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WalletOverview), args.Error(1)
}

func (m *MockWalletService) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletService) Process(ctx context.Context, admin *model.User, requestID int64, approve bool, reason string) (*model.WithdrawalRequest, error) {
	args := m.Called(ctx, admin, requestID, approve, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletService) ListPending(ctx context.Context) ([]model.WithdrawalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WithdrawalRequest), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, userID int64, limit, offset int) (*repository.PageResult[model.WalletTransaction], error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WalletTransaction]), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, title, message, link string) error {
	args := m.Called(ctx, userID, title, message, link)
	return args.Error(0)
}

func (m *MockNotifier) List(ctx context.Context, userID int64, limit, offset int) (*service.NotificationListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationListResult), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotifier) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOfficeService struct {
	mock.Mock
}

func (m *MockOfficeService) Create(ctx context.Context, in service.OfficeInput) (*model.Office, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

func (m *MockOfficeService) Update(ctx context.Context, id int64, in service.OfficeInput) (*model.Office, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

func (m *MockOfficeService) Get(ctx context.Context, id int64) (*model.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

func (m *MockOfficeService) List(ctx context.Context, activeOnly bool) ([]model.Office, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Office), args.Error(1)
}

func (m *MockOfficeService) AddRegion(ctx context.Context, in service.RegionInput) (*model.OfficeRegion, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfficeRegion), args.Error(1)
}

func (m *MockOfficeService) RemoveRegion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOfficeService) Regions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OfficeRegion), args.Error(1)
}

func (m *MockOfficeService) Route(ctx context.Context, country, city string) (*model.Office, error) {
	args := m.Called(ctx, country, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (*model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, in model.SiteSettings) (*model.SiteSettings, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsService) UploadAsset(ctx context.Context, slot string, file service.DocumentUpload) (*model.SiteSettings, error) {
	args := m.Called(ctx, slot, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}
