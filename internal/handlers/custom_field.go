// internal/handlers/custom_field.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/services"
	"github.com/adsworks/ads-backend/internal/utils"
)

type CustomFieldHandler struct {
	customFieldService *services.CustomFieldService
	cfg                *config.Config
}

func NewCustomFieldHandler(customFieldService *services.CustomFieldService, cfg *config.Config) *CustomFieldHandler {
	return &CustomFieldHandler{customFieldService: customFieldService, cfg: cfg}
}

// GET /custom-fields
func (h *CustomFieldHandler) GetCustomFields(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.cfg.App.DefaultPageSize, h.cfg.App.MaxPageSize)

	fields, total, err := h.customFieldService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(fields, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /custom-fields/:id
func (h *CustomFieldHandler) GetCustomField(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid custom field ID", nil)
		return
	}

	field, err := h.customFieldService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"custom_field": field})
}

// POST /custom-fields
func (h *CustomFieldHandler) CreateCustomField(c *gin.Context) {
	var req services.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	field, err := h.customFieldService.Create(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"custom_field": field})
}

// PUT /custom-fields/:id
func (h *CustomFieldHandler) UpdateCustomField(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid custom field ID", nil)
		return
	}

	var req services.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	field, err := h.customFieldService.Update(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"custom_field": field})
}

// DELETE /custom-fields/:id
func (h *CustomFieldHandler) DeleteCustomField(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid custom field ID", nil)
		return
	}

	if err := h.customFieldService.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Custom field deleted successfully"})
}
