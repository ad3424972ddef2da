package handlers

import (
	"path"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/services"
)

const ModelNotFoundError = "model not found"

// ModelHandler defines handlers for model resources.
type ModelHandler struct {
	Service   *services.ModelService
	Share     *services.ShareService
	Analytics *services.AnalyticsService
}

func NewModelHandler(service *services.ModelService, share *services.ShareService, analytics *services.AnalyticsService) *ModelHandler {
	return &ModelHandler{Service: service, Share: share, Analytics: analytics}
}

// ListModels handles GET /models.
// @Summary List models
// @Description Lists models newest first, optionally filtered by customer and category
// @Tags models
// @Produce json
// @Param customer query string false "Customer id"
// @Param category query string false "Category"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Model
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /models [get]
func (h *ModelHandler) ListModels(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := h.Service.ListModels(c.UserContext(), c.Query("customer"), c.Query("category"), limit, offset)
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(list)
}

// GetModel handles GET /models/:id.
// @Summary Get a model
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} models.Model
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id} [get]
func (h *ModelHandler) GetModel(c *fiber.Ctx) error {
	m, err := h.Service.GetModel(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(m)
}

// CreateModel handles POST /models.
// @Summary Upload a model
// @Description Upload a .glb or .gltf file, or a .zip holding one model file and its resources
// @Tags models
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Model file"
// @Param title formData string true "Title"
// @Param customer_id formData string true "Customer id"
// @Param category formData string false "Category"
// @Success 201 {object} models.Model
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /models [post]
func (h *ModelHandler) CreateModel(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "failed to read file: "+err.Error())
	}
	f, err := fileHeader.Open()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()

	m, err := h.Service.CreateModel(c.UserContext(), services.CreateModelInput{
		Title:      c.FormValue("title"),
		CustomerID: c.FormValue("customer_id"),
		Category:   c.FormValue("category"),
		Filename:   fileHeader.Filename,
		File:       f,
		Size:       fileHeader.Size,
	})
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// UpdateModel handles PATCH /models/:id.
// @Summary Update model metadata
// @Description Changes title and category. Published links keep working.
// @Tags models
// @Accept json
// @Produce json
// @Param id path string true "Model ID"
// @Param request body UpdateModelRequest true "Fields to change"
// @Success 200 {object} models.Model
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id} [patch]
func (h *ModelHandler) UpdateModel(c *fiber.Ctx) error {
	var req UpdateModelRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	m, err := h.Service.UpdateModel(c.UserContext(), c.Params("id"), services.UpdateModelInput{
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(m)
}

// DeleteModel handles DELETE /models/:id.
// @Summary Delete a model
// @Tags models
// @Param id path string true "Model ID"
// @Success 204
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id} [delete]
func (h *ModelHandler) DeleteModel(c *fiber.Ctx) error {
	if err := h.Service.DeleteModel(c.UserContext(), c.Params("id")); err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadModel handles GET /models/:id/file.
// @Summary Download the model file
// @Tags models
// @Produce octet-stream
// @Param id path string true "Model ID"
// @Success 200 {file} binary "Model file"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id}/file [get]
func (h *ModelHandler) DownloadModel(c *fiber.Ctx) error {
	rc, size, contentType, m, err := h.Service.OpenModelFile(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+m.ProductSlug()+path.Ext(m.PublicID)+"\"")
	log.Ctx(c.UserContext()).Debug().Str("model_id", m.ID).Int64("size", size).Msg("streaming model file")
	return c.SendStream(rc, int(size))
}

// ShareLinks handles GET /models/:id/share.
// @Summary Share links for a model
// @Description SEO, viewer and QR links for the model and each variant
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} services.ModelShare
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id}/share [get]
func (h *ModelHandler) ShareLinks(c *fiber.Ctx) error {
	share, err := h.Share.Share(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(share)
}

// RecordView handles POST /models/:id/views.
// @Summary Track a view
// @Tags analytics
// @Accept json
// @Param id path string true "Model ID"
// @Param request body RecordViewRequest false "Viewed variant"
// @Success 204
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Failure 429 {object} map[string]interface{} "Rate limited"
// @Router /models/{id}/views [post]
func (h *ModelHandler) RecordView(c *fiber.Ctx) error {
	var req RecordViewRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if err := h.Analytics.RecordView(c.UserContext(), c.Params("id"), req.VariantID); err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ViewStats handles GET /models/:id/stats.
// @Summary View statistics
// @Tags analytics
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} models.ViewStats
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Router /models/{id}/stats [get]
func (h *ModelHandler) ViewStats(c *fiber.Ctx) error {
	stats, err := h.Analytics.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, ModelNotFoundError)
	}
	return c.JSON(stats)
}
