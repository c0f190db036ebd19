package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dfseducation/internal/config"
	"dfseducation/internal/model"
	"dfseducation/internal/service"
	svcMocks "dfseducation/internal/service/mocks"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("generates a request id when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("preserves an existing request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "test-id-123", resp.Header.Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestRequireAuth(t *testing.T) {
	newApp := func(auth service.AuthService) *fiber.App {
		app := fiber.New()
		app.Use(RequireAuth(auth))
		app.Get("/me", func(c *fiber.Ctx) error {
			return c.SendString(CurrentUser(c).Username)
		})
		return app
	}

	t.Run("missing token", func(t *testing.T) {
		app := newApp(new(svcMocks.MockAuthService))
		resp, _ := app.Test(httptest.NewRequest("GET", "/me", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		auth := new(svcMocks.MockAuthService)
		auth.On("Validate", mock.Anything, "tok-1").Return(&model.User{ID: 5, Username: "student1"}, nil)
		app := newApp(auth)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-1")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "student1", buf.String())
	})

	t.Run("expired session", func(t *testing.T) {
		auth := new(svcMocks.MockAuthService)
		auth.On("Validate", mock.Anything, "tok-old").Return(nil, service.ErrSessionExpired)
		app := newApp(auth)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-old")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	newApp := func(user *model.User) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(UserLocalKey, user)
			return c.Next()
		})
		app.Get("/agent", RequireRole(model.RoleAgent), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("matching role passes", func(t *testing.T) {
		app := newApp(&model.User{Role: model.RoleAgent})
		resp, _ := app.Test(httptest.NewRequest("GET", "/agent", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("superuser always passes", func(t *testing.T) {
		app := newApp(&model.User{Role: model.RoleUser, IsSuperuser: true})
		resp, _ := app.Test(httptest.NewRequest("GET", "/agent", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other roles are refused", func(t *testing.T) {
		app := newApp(&model.User{Role: model.RoleUser})
		resp, _ := app.Test(httptest.NewRequest("GET", "/agent", nil))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestSecurity(t *testing.T) {
	cfg := &config.AppConfig{
		AllowedHosts:       []string{"dfs-education.com"},
		CSRFTrustedOrigins: []string{"https://dfs-education.com"},
	}

	app := fiber.New()
	app.Use(Security(cfg))
	app.Post("/login", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("disallowed host", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Host = "evil.example.com"
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("trusted origin", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Host = "dfs-education.com"
		req.Header.Set(fiber.HeaderOrigin, "https://dfs-education.com")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("untrusted origin on a mutating request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Host = "dfs-education.com"
		req.Header.Set(fiber.HeaderOrigin, "https://evil.example.com")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0, 2)

	app := fiber.New()
	app.Post("/login", rl.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, _ := app.Test(httptest.NewRequest("POST", "/login", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, _ := app.Test(httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
