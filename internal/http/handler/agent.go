package handler

import (
	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/service"
)

// AgentHandler serves the agent's queue: final decisions on forwarded
// applications and review of HQ uploads.
type AgentHandler struct {
	apps service.ApplicationService
}

// NewAgentHandler constructs an AgentHandler.
func NewAgentHandler(apps service.ApplicationService) *AgentHandler {
	return &AgentHandler{apps: apps}
}

// List handles GET /agent/applications. Agents see the applications
// assigned to them.
func (h *AgentHandler) List(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	f := applicationFilterFromQuery(c)
	f.AssignedAgent = middleware.CurrentUser(c).ID
	res, err := h.apps.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Stats handles GET /agent/dashboard.
func (h *AgentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.apps.Stats(c.UserContext(), repository.ApplicationFilter{
		AssignedAgent: middleware.CurrentUser(c).ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Detail handles GET /agent/applications/:id.
func (h *AgentHandler) Detail(c *fiber.Ctx) error {
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

type approveRequest struct {
	DeadlineDays int `json:"deadline_days"`
}

// Approve handles POST /agent/applications/:id/approve.
func (h *AgentHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in approveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	app, err := h.apps.Approve(c.UserContext(), middleware.CurrentUser(c), id, in.DeadlineDays)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /agent/applications/:id/reject.
func (h *AgentHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in rejectRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	app, err := h.apps.Reject(c.UserContext(), middleware.CurrentUser(c), id, in.Reason)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// uploadKindParam maps the route segment to the upload kind.
func uploadKindParam(c *fiber.Ctx) (string, error) {
	switch c.Params("kind") {
	case "admission-letters":
		return model.UploadKindLetter, nil
	case "jw02-forms":
		return model.UploadKindJW02, nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "invalid upload kind")
}

// ApproveUpload handles POST /agent/uploads/:kind/:id/approve.
func (h *AgentHandler) ApproveUpload(c *fiber.Ctx) error {
	kind, err := uploadKindParam(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.ApproveUpload(c.UserContext(), middleware.CurrentUser(c), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

type revisionRequest struct {
	Note string `json:"note"`
}

// RequestRevision handles POST /agent/uploads/:kind/:id/request-revision.
func (h *AgentHandler) RequestRevision(c *fiber.Ctx) error {
	kind, err := uploadKindParam(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in revisionRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	app, err := h.apps.RequestRevision(c.UserContext(), middleware.CurrentUser(c), kind, id, in.Note)
	if err != nil {
		return err
	}
	return c.JSON(app)
}
