package handler

import (
	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/repository"
	"dfseducation/internal/service"
)

// PublicHandler serves the unauthenticated catalog and site endpoints.
type PublicHandler struct {
	scholarships service.ScholarshipService
	settings     service.SettingsService
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(scholarships service.ScholarshipService, settings service.SettingsService) *PublicHandler {
	return &PublicHandler{scholarships: scholarships, settings: settings}
}

// ListScholarships handles GET /scholarships with search and filter
// query parameters.
func (h *PublicHandler) ListScholarships(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 12)
	f := repository.ScholarshipFilter{
		Query:  c.Query("q"),
		Degree: c.Query("degree"),
		Type:   c.Query("type"),
	}
	res, err := h.scholarships.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetScholarship handles GET /scholarships/:id.
func (h *PublicHandler) GetScholarship(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sch, err := h.scholarships.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(sch)
}

// SiteSettings handles GET /site-settings. The branding and contact
// block rendered by every page.
func (h *PublicHandler) SiteSettings(c *fiber.Ctx) error {
	s, err := h.settings.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(s)
}
