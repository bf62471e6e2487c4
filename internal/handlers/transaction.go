package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/models"
	"baartal/internal/services/business"
	"baartal/internal/services/ledger"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

type TransactionHandler struct {
	ledgerService   ledger.Service
	businessService business.Service
}

func NewTransactionHandler(ledgerService ledger.Service, businessService business.Service) *TransactionHandler {
	return &TransactionHandler{
		ledgerService:   ledgerService,
		businessService: businessService,
	}
}

// Create records a transaction directly, without a QR scan. Earned
// entries take a bill amount, redeemed entries a coin amount.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input struct {
		BusinessID     string  `json:"businessId"`
		Type           string  `json:"type"`
		BillAmount     float64 `json:"billAmount"`
		Amount         float64 `json:"amount"`
		IdempotencyKey string  `json:"idempotencyKey"`
		Description    string  `json:"description"`
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

	switch input.Type {
	case models.TransactionTypeEarned:
		v := validation.New()
		v.Range("billAmount", input.BillAmount, validation.MinBillAmount, validation.MaxBillAmount)
		if !v.Valid() {
			return utils.ValidationFailed(c, v.Errors)
		}

		res, err := h.ledgerService.Earn(c.Context(), ledger.EarnRequest{
			CustomerID:     claims.UserID,
			BusinessID:     businessID,
			BillAmount:     input.BillAmount,
			IdempotencyKey: input.IdempotencyKey,
			Description:    input.Description,
		})
		if err != nil {
			return utils.Error(c, err)
		}
		return utils.Created(c, res)

	case models.TransactionTypeRedeemed:
		v := validation.New()
		v.Positive("amount", input.Amount)
		if !v.Valid() {
			return utils.ValidationFailed(c, v.Errors)
		}

		res, err := h.ledgerService.Redeem(c.Context(), ledger.RedeemRequest{
			CustomerID:     claims.UserID,
			BusinessID:     businessID,
			Amount:         input.Amount,
			IdempotencyKey: input.IdempotencyKey,
			Description:    input.Description,
		})
		if err != nil {
			return utils.Error(c, err)
		}
		return utils.Created(c, res)

	default:
		return utils.BadRequest(c, "type must be \"earned\" or \"redeemed\"")
	}
}

// Redeem spends coins at a business.
func (h *TransactionHandler) Redeem(c *fiber.Ctx) error {
	var input struct {
		BusinessID     string  `json:"businessId"`
		Amount         float64 `json:"amount"`
		IdempotencyKey string  `json:"idempotencyKey"`
		Description    string  `json:"description"`
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

	res, err := h.ledgerService.Redeem(c.Context(), ledger.RedeemRequest{
		CustomerID:     claims.UserID,
		BusinessID:     businessID,
		Amount:         input.Amount,
		IdempotencyKey: input.IdempotencyKey,
		Description:    input.Description,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, res)
}

// CustomerHistory returns a customer's transactions, newest first.
// Customers can only read their own history.
func (h *TransactionHandler) CustomerHistory(c *fiber.Ctx) error {
	customerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}
	if claims.UserID != customerID && claims.UserType != models.UserTypeAdmin {
		return utils.Forbidden(c, "cannot read another customer's history")
	}

	p := utils.GetPagination(c)
	txs, total, err := h.ledgerService.GetCustomerTransactions(c.Context(), customerID, p.Limit, p.Offset)
	if err != nil {
		return utils.Error(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(txs, p))
}

// BusinessHistory returns a business's transactions. Only the owner
// or an admin may read it.
func (h *TransactionHandler) BusinessHistory(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if claims.UserType != models.UserTypeAdmin {
		b, err := h.businessService.Get(c.Context(), businessID)
		if err != nil {
			return utils.Error(c, err)
		}
		if b.OwnerUserID != claims.UserID {
			return utils.Forbidden(c, "cannot read another business's history")
		}
	}

	p := utils.GetPagination(c)
	txs, total, err := h.ledgerService.GetBusinessTransactions(c.Context(), businessID, p.Limit, p.Offset)
	if err != nil {
		return utils.Error(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(txs, p))
}
