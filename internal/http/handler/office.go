package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/service"
)

// OfficeHandler serves the branch office review queue: incoming
// applications, document checks, payment review, and forwarding to an
// agent. Offices can also open applications on behalf of walk-in
// students.
type OfficeHandler struct {
	apps     service.ApplicationService
	payments service.PaymentService
	auth     service.AuthService
}

// NewOfficeHandler constructs an OfficeHandler.
func NewOfficeHandler(apps service.ApplicationService, payments service.PaymentService, auth service.AuthService) *OfficeHandler {
	return &OfficeHandler{apps: apps, payments: payments, auth: auth}
}

func applicationFilterFromQuery(c *fiber.Ctx) repository.ApplicationFilter {
	var f repository.ApplicationFilter
	if status := c.Query("status"); status != "" {
		f.Statuses = []string{status}
	}
	return f
}

// List handles GET /office/applications.
func (h *OfficeHandler) List(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.apps.List(c.UserContext(), applicationFilterFromQuery(c), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Stats handles GET /office/dashboard.
func (h *OfficeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.apps.Stats(c.UserContext(), repository.ApplicationFilter{})
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Detail handles GET /office/applications/:id.
func (h *OfficeHandler) Detail(c *fiber.Ctx) error {
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

// StartReview handles POST /office/applications/:id/start-review.
func (h *OfficeHandler) StartReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.StartReview(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// VerifyDocuments handles POST /office/applications/:id/verify-documents.
func (h *OfficeHandler) VerifyDocuments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.VerifyDocuments(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

type forwardRequest struct {
	AgentID int64 `json:"agent_id"`
}

// Forward handles POST /office/applications/:id/forward. An empty
// agent_id picks the first active agent.
func (h *OfficeHandler) Forward(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in forwardRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	app, err := h.apps.ForwardToAgent(c.UserContext(), middleware.CurrentUser(c), id, in.AgentID)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// student resolves the student_id multipart field or :id path param to a
// student account.
func (h *OfficeHandler) student(c *fiber.Ctx, userID int64) (*model.User, error) {
	u, err := h.auth.Profile(c.UserContext(), userID)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleUser {
		return nil, fiber.NewError(fiber.StatusBadRequest, "account is not a student")
	}
	return u, nil
}

// CreateForStudent handles POST /office/applications. The multipart form
// matches the student apply form plus a student_id field naming the
// account the office is acting for.
func (h *OfficeHandler) CreateForStudent(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.FormValue("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
	}
	scholarshipID, err := strconv.ParseInt(c.FormValue("scholarship_id"), 10, 64)
	if err != nil || scholarshipID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scholarship_id")
	}
	submit, _ := strconv.ParseBool(c.FormValue("submit"))

	student, err := h.student(c, studentID)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	var docs []service.DocumentUpload
	for _, field := range model.DocumentFields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		up, f, err := uploadFromHeader(field, headers[0])
		if err != nil {
			return err
		}
		defer f.Close()
		docs = append(docs, up)
	}

	app, err := h.apps.Apply(c.UserContext(), student, scholarshipID, docs, submit)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// SubmitForStudent handles POST /office/applications/:id/submit.
func (h *OfficeHandler) SubmitForStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	student, err := h.student(c, app.UserID)
	if err != nil {
		return err
	}
	updated, err := h.apps.Submit(c.UserContext(), student, id)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// ListStudents handles GET /office/users.
func (h *OfficeHandler) ListStudents(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.auth.ListUsers(c.UserContext(), model.RoleUser, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ListPayments handles GET /office/payments.
func (h *OfficeHandler) ListPayments(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.payments.List(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

type paymentReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// ReviewPayment handles POST /office/payments/:id/review. Approval moves
// the application to payment verified.
func (h *OfficeHandler) ReviewPayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in paymentReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payment, err := h.payments.Review(c.UserContext(), middleware.CurrentUser(c), id, in.Approve, in.Note)
	if err != nil {
		return err
	}
	return c.JSON(payment)
}
