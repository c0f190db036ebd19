package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/service"
)

// WalletHandler serves the commission wallet for agents and HQ users.
type WalletHandler struct {
	wallets service.WalletService
}

// NewWalletHandler constructs a WalletHandler.
func NewWalletHandler(wallets service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Overview handles GET /wallet.
func (h *WalletHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.wallets.Overview(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// Transactions handles GET /wallet/transactions.
func (h *WalletHandler) Transactions(c *fiber.Ctx) error {
	limit, offset := queryPage(c, 20)
	res, err := h.wallets.Transactions(c.UserContext(), middleware.CurrentUser(c).ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}

type withdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Withdraw handles POST /wallet/withdrawals.
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	var in withdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req, err := h.wallets.RequestWithdrawal(c.UserContext(), middleware.CurrentUser(c).ID, in.Amount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}
