// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/handlers"
	"github.com/adsworks/ads-backend/internal/middleware"
	"github.com/adsworks/ads-backend/internal/services"
	"github.com/adsworks/ads-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	binder := services.NewAttributeBinder()
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db, cfg)
	customFieldService := services.NewCustomFieldService(db, cfg)
	listingService := services.NewListingService(db, cfg, binder)
	promotionService := services.NewPromotionService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, cfg)
	customFieldHandler := handlers.NewCustomFieldHandler(customFieldService, cfg)
	listingHandler := handlers.NewListingHandler(listingService, storageService, promotionService, cfg)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Custom field routes
		customFields := v1.Group("/custom-fields")
		{
			customFields.GET("", customFieldHandler.GetCustomFields)
			customFields.GET("/:id", customFieldHandler.GetCustomField)

			protected := customFields.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", customFieldHandler.CreateCustomField)
				protected.PUT("/:id", customFieldHandler.UpdateCustomField)
				protected.DELETE("/:id", customFieldHandler.DeleteCustomField)
			}
		}

		// Listing routes
		listings := v1.Group("/listings")
		{
			listings.GET("", middleware.OptionalAuth(), listingHandler.GetListings)
			listings.GET("/featured", listingHandler.GetFeaturedListings)
			listings.GET("/:id", middleware.OptionalAuth(), listingHandler.GetListing)

			protected := listings.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", listingHandler.CreateListing)
				protected.PUT("/:id", listingHandler.UpdateListing)
				protected.DELETE("/:id", listingHandler.DeleteListing)
				protected.POST("/:id/images", middleware.UploadRateLimit(), listingHandler.UploadImages)
				protected.POST("/:id/promote", listingHandler.PromoteListing)
				protected.POST("/:id/promote/confirm", listingHandler.ConfirmPromotion)
			}
		}
	}

	return r
}
