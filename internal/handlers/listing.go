// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/services"
	"github.com/adsworks/ads-backend/internal/utils"
)

type ListingHandler struct {
	listingService   *services.ListingService
	storageService   *services.StorageService
	promotionService *services.PromotionService
	cfg              *config.Config
}

func NewListingHandler(listingService *services.ListingService, storageService *services.StorageService, promotionService *services.PromotionService, cfg *config.Config) *ListingHandler {
	return &ListingHandler{
		listingService:   listingService,
		storageService:   storageService,
		promotionService: promotionService,
		cfg:              cfg,
	}
}

// GET /listings
func (h *ListingHandler) GetListings(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.cfg.App.DefaultPageSize, h.cfg.App.MaxPageSize)

	listings, total, err := h.listingService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(listings, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /listings/featured
func (h *ListingHandler) GetFeaturedListings(c *gin.Context) {
	listings, err := h.listingService.Featured(h.cfg.App.DefaultPageSize)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"listings": listings})
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	listing, err := h.listingService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req services.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.Create(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"listing": listing})
}

// PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	var req services.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.Update(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	if err := h.listingService.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Listing deleted successfully"})
}

// POST /listings/:id/images
func (h *ListingHandler) UploadImages(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}

	var uploads []services.UploadResult
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
			Folder:       "listings",
			MaxSize:      h.cfg.App.MaxUploadSize,
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".webp"},
		})
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		uploads = append(uploads, *result)
	}

	listing, err := h.listingService.AddImages(id, uploads)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// POST /listings/:id/promote
func (h *ListingHandler) PromoteListing(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	intent, err := h.promotionService.Promote(id, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"payment_intent": intent})
}

// POST /listings/:id/promote/confirm
func (h *ListingHandler) ConfirmPromotion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	var req services.ConfirmPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.promotionService.Confirm(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}
