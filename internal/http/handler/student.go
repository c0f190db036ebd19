package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/model"
	"dfseducation/internal/service"
)

// StudentHandler serves the student application flow: the dashboard,
// applying with documents, and payment receipts.
type StudentHandler struct {
	apps     service.ApplicationService
	payments service.PaymentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(apps service.ApplicationService, payments service.PaymentService) *StudentHandler {
	return &StudentHandler{apps: apps, payments: payments}
}

// Dashboard handles GET /student/dashboard.
func (h *StudentHandler) Dashboard(c *fiber.Ctx) error {
	dash, err := h.apps.StudentDashboard(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(dash)
}

// Apply handles POST /student/applications. The multipart form carries
// scholarship_id, an optional submit flag, and one file per document
// slot that the student is providing in this request.
func (h *StudentHandler) Apply(c *fiber.Ctx) error {
	scholarshipID, err := strconv.ParseInt(c.FormValue("scholarship_id"), 10, 64)
	if err != nil || scholarshipID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scholarship_id")
	}
	submit, _ := strconv.ParseBool(c.FormValue("submit"))

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

	app, err := h.apps.Apply(c.UserContext(), middleware.CurrentUser(c), scholarshipID, docs, submit)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// Submit handles POST /student/applications/:id/submit.
func (h *StudentHandler) Submit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.apps.Submit(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// Detail handles GET /student/applications/:id.
func (h *StudentHandler) Detail(c *fiber.Ctx) error {
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

// PaymentPage handles GET /student/applications/:id/payment.
func (h *StudentHandler) PaymentPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.payments.Page(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// SubmitReceipt handles POST /student/applications/:id/payment with a
// multipart "receipt" file.
func (h *StudentHandler) SubmitReceipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	up, f, err := formFile(c, "receipt")
	if err != nil {
		return err
	}
	defer f.Close()

	payment, err := h.payments.SubmitReceipt(c.UserContext(), middleware.CurrentUser(c), id, up)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}
