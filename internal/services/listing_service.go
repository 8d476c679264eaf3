// internal/services/listing_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/models"
	"github.com/adsworks/ads-backend/internal/utils"
)

type ListingService struct {
	db     *gorm.DB
	cfg    *config.Config
	binder *AttributeBinder
}

type ListingRequest struct {
	Name         string                `json:"name" validate:"required,max=100"`
	Description  string                `json:"description" validate:"max=200"`
	Price        float64               `json:"price" validate:"gte=0"`
	CategoryID   uint                  `json:"category_id" validate:"required"`
	CustomFields []AttributeValueInput `json:"custom_fields,omitempty"`
}

func NewListingService(db *gorm.DB, cfg *config.Config, binder *AttributeBinder) *ListingService {
	return &ListingService{db: db, cfg: cfg, binder: binder}
}

// Create persists the listing and its validated attribute values as one
// atomic unit.
func (s *ListingService) Create(req *ListingRequest) (*models.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var listingID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := loadCategoryWithFields(tx, req.CategoryID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		listing := &models.Listing{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			CategoryID:  category.ID,
		}
		listing.CreatedAt = now
		listing.UpdatedAt = now

		if err := tx.Omit("Category", "CustomFields", "Images").Create(listing).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		listingID = listing.ID

		values, err := s.binder.Bind(category, listing.ID, req.CustomFields)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return fmt.Errorf("failed to bind attribute values: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(listingID)
}

// Update replaces the listing's whole attribute set. When the category
// changes, every previously bound value is discarded even if the new
// category shares field ids with the old one; only values supplied in this
// call survive.
func (s *ListingService) Update(id uint, req *ListingRequest) (*models.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		category, err := loadCategoryWithFields(tx, req.CategoryID)
		if err != nil {
			return err
		}

		values, err := s.binder.Bind(category, listing.ID, req.CustomFields)
		if err != nil {
			return err
		}

		// Clear and rewrite the attribute set inside the row lock.
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.ListingCustomField{}).Error; err != nil {
			return fmt.Errorf("failed to clear attribute values: %w", err)
		}

		listing.Name = req.Name
		listing.Description = req.Description
		listing.Price = req.Price
		listing.CategoryID = category.ID
		listing.UpdatedAt = time.Now().UTC()

		if err := tx.Omit("Category", "CustomFields", "Images").Save(&listing).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return fmt.Errorf("failed to bind attribute values: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *ListingService) Get(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Preload("Category").Preload("Category.CustomFields").
		Preload("CustomFields").Preload("CustomFields.CustomField").
		Preload("Images").
		First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

func (s *ListingService) List(params utils.PaginationParams) ([]models.Listing, int64, error) {
	params = s.clamp(params)

	query := s.db.Model(&models.Listing{})
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.Listing
	if err := utils.ApplyPagination(query.Preload("Category").Preload("Images").Order("id ASC"), params).
		Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, total, nil
}

// Delete removes the listing together with its attribute values and image
// records in one transaction.
func (s *ListingService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Where("listing_id = ?", id).Delete(&models.ListingCustomField{}).Error; err != nil {
			return fmt.Errorf("failed to delete attribute values: %w", err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.ListingImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete listing images: %w", err)
		}
		if err := tx.Delete(&listing).Error; err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		return nil
	})
}

// Featured returns currently promoted listings, most recently promoted first.
func (s *ListingService) Featured(limit int) ([]models.Listing, error) {
	if limit < 1 || limit > s.cfg.App.MaxPageSize {
		limit = s.cfg.App.DefaultPageSize
	}

	var listings []models.Listing
	if err := s.db.Where("featured = ? AND featured_until > ?", true, time.Now().UTC()).
		Order("updated_at DESC").
		Limit(limit).
		Preload("Category").Preload("Images").
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured listings: %w", err)
	}
	return listings, nil
}

// AddImages records uploaded image URLs against the listing.
func (s *ListingService) AddImages(id uint, uploads []UploadResult) (*models.Listing, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now().UTC()
		images := make([]models.ListingImage, 0, len(uploads))
		for _, u := range uploads {
			img := models.ListingImage{
				ListingID:  id,
				URL:        u.URL,
				StorageKey: u.Key,
			}
			img.CreatedAt = now
			img.UpdatedAt = now
			images = append(images, img)
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to save listing images: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *ListingService) clamp(params utils.PaginationParams) utils.PaginationParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = s.cfg.App.DefaultPageSize
	}
	if params.Limit > s.cfg.App.MaxPageSize {
		params.Limit = s.cfg.App.MaxPageSize
	}
	return params
}

func loadCategoryWithFields(tx *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := tx.Preload("CustomFields").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}
