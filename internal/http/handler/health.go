package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live reports process liveness. It never touches dependencies.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports readiness, including a database ping.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.db.PingContext(c.UserContext()); err != nil {
		return writeError(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unreachable")
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}
