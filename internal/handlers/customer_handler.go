package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

const CustomerNotFoundError = "customer not found"

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: service}
}

// CreateCustomer handles POST /customers.
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Customer exists"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	cust, err := h.Service.CreateCustomer(c.UserContext(), req.ID, req.Name)
	if err != nil {
		return serviceError(c, err, CustomerNotFoundError)
	}
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// GetCustomer handles GET /customers/:id.
// @Summary Get a customer and its branding
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} map[string]interface{} "Customer not found"
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	cust, err := h.Service.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, CustomerNotFoundError)
	}
	return c.JSON(cust)
}

// UpdateBranding handles PUT /customers/:id/branding.
// @Summary Replace viewer branding
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body BrandingRequest true "Branding"
// @Success 200 {object} models.Customer
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Customer not found"
// @Router /customers/{id}/branding [put]
func (h *CustomerHandler) UpdateBranding(c *fiber.Ctx) error {
	var req BrandingRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	cust, err := h.Service.UpdateBranding(c.UserContext(), c.Params("id"), models.Branding{
		LogoURL:          req.LogoURL,
		PrimaryColor:     req.PrimaryColor,
		AccentColor:      req.AccentColor,
		FontFamily:       req.FontFamily,
		ViewerBackground: req.ViewerBackground,
	})
	if err != nil {
		return serviceError(c, err, CustomerNotFoundError)
	}
	return c.JSON(cust)
}
