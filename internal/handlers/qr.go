package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/services/ledger"
	"baartal/internal/services/qr"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

type QRHandler struct {
	qrService     qr.Service
	ledgerService ledger.Service
}

func NewQRHandler(qrService qr.Service, ledgerService ledger.Service) *QRHandler {
	return &QRHandler{
		qrService:     qrService,
		ledgerService: ledgerService,
	}
}

// Mint creates a counter token for the caller's business.
func (h *QRHandler) Mint(c *fiber.Ctx) error {
	var input struct {
		BusinessID  string     `json:"businessId"`
		Description string     `json:"description"`
		ExpiresAt   *time.Time `json:"expiresAt"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	businessID, err := uuid.Parse(input.BusinessID)
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	code, err := h.qrService.Mint(c.Context(), claims.UserID, qr.MintRequest{
		BusinessID:  businessID,
		Description: input.Description,
		ExpiresAt:   input.ExpiresAt,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, code)
}

// List returns the caller's tokens for one business.
func (h *QRHandler) List(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Query("businessId"))
	if err != nil {
		return utils.BadRequest(c, "businessId query parameter is required")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	codes, err := h.qrService.List(c.Context(), claims.UserID, businessID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"qrCodes": codes})
}

// Resolve looks a token up without touching the ledger, so a client
// can show the business before the customer confirms the bill.
func (h *QRHandler) Resolve(c *fiber.Ctx) error {
	res, err := h.qrService.Resolve(c.Context(), c.Params("code"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, res)
}

// Deactivate retires a token.
func (h *QRHandler) Deactivate(c *fiber.Ctx) error {
	codeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid qr code id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.qrService.Deactivate(c.Context(), claims.UserID, codeID); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "qr code deactivated"})
}

// Scan is the earn flow: the customer scans a counter token and
// submits the bill amount. The token is fully validated before the
// ledger is touched.
func (h *QRHandler) Scan(c *fiber.Ctx) error {
	var input struct {
		QRCode         string  `json:"qrCode"`
		BillAmount     float64 `json:"billAmount"`
		IdempotencyKey string  `json:"idempotencyKey"`
		Description    string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("qrCode", input.QRCode)
	v.Range("billAmount", input.BillAmount, validation.MinBillAmount, validation.MaxBillAmount)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	resolved, err := h.qrService.Resolve(c.Context(), input.QRCode)
	if err != nil {
		return utils.Error(c, err)
	}

	res, err := h.ledgerService.Earn(c.Context(), ledger.EarnRequest{
		CustomerID:     claims.UserID,
		BusinessID:     resolved.Business.ID,
		BillAmount:     input.BillAmount,
		QRCodeID:       &resolved.QRCode.ID,
		IdempotencyKey: input.IdempotencyKey,
		Description:    input.Description,
	})
	if err != nil {
		return utils.Error(c, err)
	}

	return utils.Created(c, fiber.Map{
		"transaction": res.Transaction,
		"balance":     res.Balance,
		"replayed":    res.Replayed,
		"business": fiber.Map{
			"id":           resolved.Business.ID,
			"businessName": resolved.Business.BusinessName,
			"bCoinRate":    resolved.Business.BCoinRate,
		},
	})
}
