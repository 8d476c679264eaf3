// internal/services/category_service.go
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

type CategoryService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=200"`
	CustomFields []uint `json:"custom_fields,omitempty"`
}

func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{db: db, cfg: cfg}
}

func (s *CategoryService) Create(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category *models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		fields, err := resolveFields(tx, req.CustomFields)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		category = &models.Category{
			Name:        req.Name,
			Description: req.Description,
		}
		category.CreatedAt = now
		category.UpdatedAt = now

		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		if len(fields) > 0 {
			if err := tx.Model(category).Association("CustomFields").Replace(fields); err != nil {
				return fmt.Errorf("failed to associate custom fields: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(category.ID)
}

// Update replaces the category's whole associated-fields set; it is never a
// merge.
func (s *CategoryService) Update(id uint, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		fields, err := resolveFields(tx, req.CustomFields)
		if err != nil {
			return err
		}

		category.Name = req.Name
		category.Description = req.Description
		category.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&category).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}

		if err := tx.Model(&category).Association("CustomFields").Replace(fields); err != nil {
			return fmt.Errorf("failed to replace custom field associations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *CategoryService) Get(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("CustomFields").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) List(params utils.PaginationParams) ([]models.Category, int64, error) {
	params = s.clamp(params)

	query := s.db.Model(&models.Category{})
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	if err := utils.ApplyPagination(query.Preload("CustomFields").Order("id ASC"), params).
		Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, total, nil
}

// Delete removes the category and its field associations. Listings that
// reference the category are left in place and keep their category_id.
func (s *CategoryService) Delete(id uint) (int64, error) {
	var rowsAffected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&category).Association("CustomFields").Clear(); err != nil {
			return fmt.Errorf("failed to clear custom field associations: %w", err)
		}

		result := tx.Delete(&category)
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		rowsAffected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}

func (s *CategoryService) clamp(params utils.PaginationParams) utils.PaginationParams {
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

// resolveFields loads the referenced field definitions, deduplicating ids.
// Any unresolved id rejects the whole operation.
func resolveFields(tx *gorm.DB, ids []uint) ([]models.CustomField, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var fields []models.CustomField
	if err := tx.Where("id IN ?", unique).Find(&fields).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve custom fields: %w", err)
	}
	if len(fields) != len(unique) {
		found := make(map[uint]struct{}, len(fields))
		for _, f := range fields {
			found[f.ID] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				return nil, fmt.Errorf("%w: id %d", ErrUnknownField, id)
			}
		}
	}

	return fields, nil
}
