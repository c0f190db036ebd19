package middleware

import (
	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/config"
)

// Security enforces the deployment security settings: the Host header
// must match ALLOWED_HOSTS, mutating cross-origin requests must come
// from a CSRF_TRUSTED_ORIGINS entry, and plain HTTP is redirected to
// HTTPS when SECURE_SSL_REDIRECT is on.
func Security(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.HostAllowed(c.Hostname()) {
			return fiber.NewError(fiber.StatusBadRequest, "host not allowed")
		}

		if cfg.SecureSSLRedirect && c.Protocol() == "http" && c.Get("X-Forwarded-Proto") != "https" {
			return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusMovedPermanently)
		}

		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			origin := c.Get(fiber.HeaderOrigin)
			sameOrigin := origin == c.Protocol()+"://"+c.Hostname()
			if origin != "" && !sameOrigin && !cfg.OriginTrusted(origin) {
				return fiber.NewError(fiber.StatusForbidden, "origin not trusted")
			}
		}

		return c.Next()
	}
}
