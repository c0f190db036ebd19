package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/service"
)

// AuthHandler serves registration, login, and the signed-in user's own
// account endpoints.
type AuthHandler struct {
	auth   service.AuthService
	notify service.Notifier
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth service.AuthService, notify service.Notifier) *AuthHandler {
	return &AuthHandler{auth: auth, notify: notify}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := h.auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, token, err := h.auth.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(loginResponse{Token: token, User: user})
}

// Logout handles POST /auth/logout. It revokes the session behind the
// presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UpdateProfile handles PUT /auth/me.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in service.ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := h.auth.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.auth.ChangePassword(c.UserContext(), middleware.CurrentUser(c).ID, in.CurrentPassword, in.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "password changed"})
}

// Notifications handles GET /notifications.
func (h *AuthHandler) Notifications(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.notify.List(c.UserContext(), middleware.CurrentUser(c).ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// MarkNotificationRead handles POST /notifications/:id/read.
func (h *AuthHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notify.MarkRead(c.UserContext(), id, middleware.CurrentUser(c).ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "read"})
}

// MarkAllNotificationsRead handles POST /notifications/read-all.
func (h *AuthHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	n, err := h.notify.MarkAllRead(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "read", "updated": n})
}
