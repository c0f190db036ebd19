package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/service"
	svcMocks "dfseducation/internal/service/mocks"
)

type testServices struct {
	auth         *svcMocks.MockAuthService
	scholarships *svcMocks.MockScholarshipService
	applications *svcMocks.MockApplicationService
	payments     *svcMocks.MockPaymentService
	wallets      *svcMocks.MockWalletService
	offices      *svcMocks.MockOfficeService
	settings     *svcMocks.MockSettingsService
	notify       *svcMocks.MockNotifier
}

func newTestApp(t *testing.T) (*fiber.App, *testServices) {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := &testServices{
		auth:         new(svcMocks.MockAuthService),
		scholarships: new(svcMocks.MockScholarshipService),
		applications: new(svcMocks.MockApplicationService),
		payments:     new(svcMocks.MockPaymentService),
		wallets:      new(svcMocks.MockWalletService),
		offices:      new(svcMocks.MockOfficeService),
		settings:     new(svcMocks.MockSettingsService),
		notify:       new(svcMocks.MockNotifier),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	noLimit := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app, db, Services{
		Auth:         s.auth,
		Scholarships: s.scholarships,
		Applications: s.applications,
		Payments:     s.payments,
		Wallets:      s.wallets,
		Offices:      s.offices,
		Settings:     s.settings,
		Notify:       s.notify,
	}, noLimit)

	return app, s
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestHealthz(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListScholarships(t *testing.T) {
	app, s := newTestApp(t)
	s.scholarships.On("List", mock.Anything, mock.Anything, 12, 0).Return(&service.ScholarshipListResult{
		Items: []model.Scholarship{{ID: 1, Name: "Tsinghua CS"}},
		Total: 1,
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/scholarships", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body service.ScholarshipListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Tsinghua CS", body.Items[0].Name)
}

func TestLogin(t *testing.T) {
	app, s := newTestApp(t)

	t.Run("success returns token and user", func(t *testing.T) {
		s.auth.On("Login", mock.Anything, "student1", "pass").Return(
			&model.User{ID: 5, Username: "student1", Role: model.RoleUser}, "tok-1", nil).Once()

		req := httptest.NewRequest("POST", "/auth/login", jsonBody(t, fiber.Map{
			"username": "student1",
			"password": "pass",
		}))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "tok-1", body["token"])
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		s.auth.On("Login", mock.Anything, "student1", "wrong").Return(nil, "", service.ErrInvalidCredentials).Once()

		req := httptest.NewRequest("POST", "/auth/login", jsonBody(t, fiber.Map{
			"username": "student1",
			"password": "wrong",
		}))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	})
}

func authAs(s *testServices, user *model.User, token string) {
	s.auth.On("Validate", mock.Anything, token).Return(user, nil)
}

func TestStudentSubmit(t *testing.T) {
	app, s := newTestApp(t)
	studentUser := &model.User{ID: 5, Username: "student1", Role: model.RoleUser, Status: model.UserActive}
	authAs(s, studentUser, "tok-1")

	t.Run("submits", func(t *testing.T) {
		s.applications.On("Submit", mock.Anything, studentUser, int64(1)).Return(
			&model.Application{ID: 1, Status: model.StatusSubmitted}, nil).Once()

		req := httptest.NewRequest("POST", "/student/applications/1/submit", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("incomplete documents map to 422", func(t *testing.T) {
		s.applications.On("Submit", mock.Anything, studentUser, int64(2)).Return(nil, service.ErrDocumentsIncomplete).Once()

		req := httptest.NewRequest("POST", "/student/applications/2/submit", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/student/applications/1/submit", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRoleScoping(t *testing.T) {
	app, s := newTestApp(t)
	studentUser := &model.User{ID: 5, Role: model.RoleUser, Status: model.UserActive}
	authAs(s, studentUser, "tok-student")

	req := httptest.NewRequest("GET", "/agent/applications", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-student")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAgentReject(t *testing.T) {
	app, s := newTestApp(t)
	agentUser := &model.User{ID: 3, Role: model.RoleAgent, Status: model.UserActive}
	authAs(s, agentUser, "tok-agent")

	t.Run("missing reason maps to 400", func(t *testing.T) {
		s.applications.On("Reject", mock.Anything, agentUser, int64(1), "").Return(nil, service.ErrReasonRequired).Once()

		req := httptest.NewRequest("POST", "/agent/applications/1/reject", jsonBody(t, fiber.Map{"reason": ""}))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-agent")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects with reason", func(t *testing.T) {
		s.applications.On("Reject", mock.Anything, agentUser, int64(1), "missing transcript").Return(
			&model.Application{ID: 1, Status: model.StatusRejected}, nil).Once()

		req := httptest.NewRequest("POST", "/agent/applications/1/reject", jsonBody(t, fiber.Map{"reason": "missing transcript"}))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-agent")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestOfficeSubmitForStudent(t *testing.T) {
	app, s := newTestApp(t)
	officeUser := &model.User{ID: 2, Role: model.RoleOffice, Status: model.UserActive}
	studentUser := &model.User{ID: 5, Role: model.RoleUser, Status: model.UserActive}
	authAs(s, officeUser, "tok-office")

	t.Run("submits on the student's behalf", func(t *testing.T) {
		s.applications.On("Get", mock.Anything, int64(7)).Return(
			&model.Application{ID: 7, UserID: 5, Status: model.StatusDraft}, nil).Once()
		s.auth.On("Profile", mock.Anything, int64(5)).Return(studentUser, nil).Once()
		s.applications.On("Submit", mock.Anything, studentUser, int64(7)).Return(
			&model.Application{ID: 7, Status: model.StatusSubmitted}, nil).Once()

		req := httptest.NewRequest("POST", "/office/applications/7/submit", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-office")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("refuses non-student owner", func(t *testing.T) {
		s.applications.On("Get", mock.Anything, int64(8)).Return(
			&model.Application{ID: 8, UserID: 3, Status: model.StatusDraft}, nil).Once()
		s.auth.On("Profile", mock.Anything, int64(3)).Return(
			&model.User{ID: 3, Role: model.RoleAgent, Status: model.UserActive}, nil).Once()

		req := httptest.NewRequest("POST", "/office/applications/8/submit", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-office")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminGuard(t *testing.T) {
	app, s := newTestApp(t)
	agentUser := &model.User{ID: 3, Role: model.RoleAgent, Status: model.UserActive}
	adminUser := &model.User{ID: 1, Role: model.RoleUser, Status: model.UserActive, IsSuperuser: true}
	authAs(s, agentUser, "tok-agent")
	authAs(s, adminUser, "tok-admin")

	t.Run("non superuser is refused", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-agent")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("superuser lists users", func(t *testing.T) {
		s.auth.On("ListUsers", mock.Anything, "", 20, 0).Return(&repository.PageResult[model.User]{
			Items: []model.User{{ID: 3, Username: "agent1"}},
			Total: 1,
		}, nil).Once()

		req := httptest.NewRequest("GET", "/admin/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-admin")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
