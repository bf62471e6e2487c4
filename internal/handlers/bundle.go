package handlers

import (
	"github.com/gofiber/fiber/v2"

	"baartal/internal/repositories"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

type BundleHandler struct {
	bundles repositories.BundleRepository
}

func NewBundleHandler(bundles repositories.BundleRepository) *BundleHandler {
	return &BundleHandler{bundles: bundles}
}

// List returns all bundles with their active member businesses.
func (h *BundleHandler) List(c *fiber.Ctx) error {
	bundles, err := h.bundles.List(c.Context(), c.QueryBool("onlyActive", true))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"bundles": bundles})
}

// GetByPincode returns one pincode's bundle.
func (h *BundleHandler) GetByPincode(c *fiber.Ctx) error {
	pincode := c.Params("pincode")

	v := validation.New()
	v.Pincode("pincode", pincode)
	if !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	bundle, err := h.bundles.GetByPincode(pincode)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, bundle)
}
