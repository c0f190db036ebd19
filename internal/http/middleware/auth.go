package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/model"
	"dfseducation/internal/service"
)

// UserLocalKey stores the authenticated *model.User in context locals.
const UserLocalKey = "current_user"

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// RequireAuth validates the Bearer token on every request and stores the
// resolved user in locals. Requests without a valid, unexpired session
// are rejected with 401.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		user, err := auth.Validate(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrInvalidToken):
				return fiber.NewError(fiber.StatusUnauthorized, "session expired or invalid")
			case errors.Is(err, service.ErrAccountInactive):
				return fiber.NewError(fiber.StatusForbidden, "account is not active")
			}
			return err
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// RequireRole allows only users whose role is in roles. Superusers always
// pass. Must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if user.IsSuperuser {
			return c.Next()
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// RequireSuperuser allows only superusers. Must run after RequireAuth.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if !user.IsSuperuser {
			return fiber.NewError(fiber.StatusForbidden, "superuser required")
		}
		return c.Next()
	}
}
