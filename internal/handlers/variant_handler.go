package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalog-service/internal/services"
)

const VariantNotFoundError = "variant not found"

// VariantHandler defines handlers for color variants.
type VariantHandler struct {
	Service *services.VariantService
}

func NewVariantHandler(service *services.VariantService) *VariantHandler {
	return &VariantHandler{Service: service}
}

// CreateVariant handles POST /models/:id/variants.
// @Summary Add a color variant
// @Description Either variant_name or hex_color is required. The color slug is unique within the model.
// @Tags variants
// @Accept json
// @Produce json
// @Param id path string true "Model ID"
// @Param request body CreateVariantRequest true "Variant"
// @Success 201 {object} models.Variant
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id}/variants [post]
func (h *VariantHandler) CreateVariant(c *fiber.Ctx) error {
	var req CreateVariantRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	v, err := h.Service.CreateVariant(c.UserContext(), c.Params("id"), services.CreateVariantInput{
		VariantName: req.VariantName,
		HexColor:    req.HexColor,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// ListVariants handles GET /models/:id/variants.
// @Summary List variants of a model
// @Tags variants
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {array} models.Variant
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id}/variants [get]
func (h *VariantHandler) ListVariants(c *fiber.Ctx) error {
	list, err := h.Service.ListVariants(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(list)
}

// SetPrimary handles PUT /variants/:id/primary.
// @Summary Make a variant the primary one
// @Tags variants
// @Produce json
// @Param id path string true "Variant ID"
// @Success 200 {object} models.Variant
// @Failure 404 {object} map[string]interface{} "Variant not found"
// @Router /variants/{id}/primary [put]
func (h *VariantHandler) SetPrimary(c *fiber.Ctx) error {
	v, err := h.Service.SetPrimary(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, VariantNotFoundError)
	}
	return c.JSON(v)
}

// DeleteVariant handles DELETE /variants/:id.
// @Summary Delete a variant
// @Tags variants
// @Param id path string true "Variant ID"
// @Success 204
// @Failure 404 {object} map[string]interface{} "Variant not found"
// @Router /variants/{id} [delete]
func (h *VariantHandler) DeleteVariant(c *fiber.Ctx) error {
	if err := h.Service.DeleteVariant(c.UserContext(), c.Params("id")); err != nil {
		return serviceError(c, err, VariantNotFoundError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
