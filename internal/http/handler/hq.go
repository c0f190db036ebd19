package handler

import (
	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/repository"
	"dfseducation/internal/service"
)

// HQHandler serves the headquarters queue: running approved applications
// against the university and uploading the resulting documents.
type HQHandler struct {
	apps service.ApplicationService
}

// NewHQHandler constructs an HQHandler.
func NewHQHandler(apps service.ApplicationService) *HQHandler {
	return &HQHandler{apps: apps}
}

// List handles GET /hq/applications.
func (h *HQHandler) List(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	f := applicationFilterFromQuery(c)
	f.AssignedHQ = middleware.CurrentUser(c).ID
	res, err := h.apps.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Stats handles GET /hq/dashboard.
func (h *HQHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.apps.Stats(c.UserContext(), repository.ApplicationFilter{
		AssignedHQ: middleware.CurrentUser(c).ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Detail handles GET /hq/applications/:id.
func (h *HQHandler) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.apps.Detail(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// MarkInProgress handles POST /hq/applications/:id/start.
func (h *HQHandler) MarkInProgress(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.MarkInProgress(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// Upload handles POST /hq/applications/:id/uploads/:kind with a
// multipart "file". Kind is admission-letters or jw02-forms.
func (h *HQHandler) Upload(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	kind, err := uploadKindParam(c)
	if err != nil {
		return err
	}
	up, f, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer f.Close()

	upload, err := h.apps.UploadReviewable(c.UserContext(), middleware.CurrentUser(c), id, kind, up)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}

// RevisionQueue handles GET /hq/uploads/:kind/revisions, the uploads the
// agent sent back for another pass.
func (h *HQHandler) RevisionQueue(c *fiber.Ctx) error {
	kind, err := uploadKindParam(c)
	if err != nil {
		return err
	}
	uploads, err := h.apps.RevisionQueue(c.UserContext(), kind)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": uploads})
}
