package handler

import (
	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/model"
	"dfseducation/internal/service"
)

// AdminHandler serves the superuser management surface: scholarships,
// bank accounts, offices and their routing regions, site settings, user
// listing, and withdrawal processing.
type AdminHandler struct {
	auth         service.AuthService
	scholarships service.ScholarshipService
	payments     service.PaymentService
	wallets      service.WalletService
	offices      service.OfficeService
	settings     service.SettingsService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(
	auth service.AuthService,
	scholarships service.ScholarshipService,
	payments service.PaymentService,
	wallets service.WalletService,
	offices service.OfficeService,
	settings service.SettingsService,
) *AdminHandler {
	return &AdminHandler{
		auth:         auth,
		scholarships: scholarships,
		payments:     payments,
		wallets:      wallets,
		offices:      offices,
		settings:     settings,
	}
}

// CreateScholarship handles POST /admin/scholarships.
func (h *AdminHandler) CreateScholarship(c *fiber.Ctx) error {
	var in service.ScholarshipInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	sch, err := h.scholarships.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sch)
}

// UpdateScholarship handles PUT /admin/scholarships/:id.
func (h *AdminHandler) UpdateScholarship(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in service.ScholarshipInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	sch, err := h.scholarships.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(sch)
}

// DeleteScholarship handles DELETE /admin/scholarships/:id.
func (h *AdminHandler) DeleteScholarship(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.scholarships.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers handles GET /admin/users with an optional role filter.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.auth.ListUsers(c.UserContext(), c.Query("role"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}

// CreateBankAccount handles POST /admin/bank-accounts.
func (h *AdminHandler) CreateBankAccount(c *fiber.Ctx) error {
	var in service.BankAccountInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	b, err := h.payments.CreateBankAccount(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// UpdateBankAccount handles PUT /admin/bank-accounts/:id.
func (h *AdminHandler) UpdateBankAccount(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in service.BankAccountInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	b, err := h.payments.UpdateBankAccount(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

// ListBankAccounts handles GET /admin/bank-accounts.
func (h *AdminHandler) ListBankAccounts(c *fiber.Ctx) error {
	accounts, err := h.payments.ListBankAccounts(c.UserContext(), false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accounts})
}

// CreateOffice handles POST /admin/offices.
func (h *AdminHandler) CreateOffice(c *fiber.Ctx) error {
	var in service.OfficeInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	o, err := h.offices.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// UpdateOffice handles PUT /admin/offices/:id.
func (h *AdminHandler) UpdateOffice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in service.OfficeInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	o, err := h.offices.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// ListOffices handles GET /admin/offices.
func (h *AdminHandler) ListOffices(c *fiber.Ctx) error {
	offices, err := h.offices.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": offices})
}

// AddRegion handles POST /admin/offices/:id/regions.
func (h *AdminHandler) AddRegion(c *fiber.Ctx) error {
	officeID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in service.RegionInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	in.OfficeID = officeID
	region, err := h.offices.AddRegion(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(region)
}

// RemoveRegion handles DELETE /admin/regions/:id.
func (h *AdminHandler) RemoveRegion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.offices.RemoveRegion(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRegions handles GET /admin/offices/:id/regions.
func (h *AdminHandler) ListRegions(c *fiber.Ctx) error {
	officeID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	regions, err := h.offices.Regions(c.UserContext(), officeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": regions})
}

// UpdateSettings handles PUT /admin/site-settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var in model.SiteSettings
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	s, err := h.settings.Update(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// UploadSettingsAsset handles POST /admin/site-settings/assets/:slot
// with a multipart "file".
func (h *AdminHandler) UploadSettingsAsset(c *fiber.Ctx) error {
	up, f, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := h.settings.UploadAsset(c.UserContext(), c.Params("slot"), up)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// ListPendingWithdrawals handles GET /admin/withdrawals.
func (h *AdminHandler) ListPendingWithdrawals(c *fiber.Ctx) error {
	reqs, err := h.wallets.ListPending(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reqs})
}

type processWithdrawalRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// ProcessWithdrawal handles POST /admin/withdrawals/:id/process.
func (h *AdminHandler) ProcessWithdrawal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in processWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req, err := h.wallets.Process(c.UserContext(), middleware.CurrentUser(c), id, in.Approve, in.Reason)
	if err != nil {
		return err
	}
	return c.JSON(req)
}
