// internal/services/custom_field_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/fieldtypes"
	"github.com/adsworks/ads-backend/internal/models"
	"github.com/adsworks/ads-backend/internal/utils"
)

type CustomFieldService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CustomFieldRequest struct {
	Name        string             `json:"name" validate:"required,max=100"`
	Type        fieldtypes.Type    `json:"type" validate:"required"`
	Description string             `json:"description" validate:"max=200"`
	FieldConfig *fieldtypes.Config `json:"field_config,omitempty"`
}

func NewCustomFieldService(db *gorm.DB, cfg *config.Config) *CustomFieldService {
	return &CustomFieldService{db: db, cfg: cfg}
}

func (s *CustomFieldService) Create(req *CustomFieldRequest) (*models.CustomField, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := validateConfiguration(req.Type, req.FieldConfig); err != nil {
		return nil, err
	}

	var existing models.CustomField
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldNameTaken, req.Name)
	}

	now := time.Now().UTC()
	field := &models.CustomField{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		FieldConfig: (*models.FieldConfig)(req.FieldConfig),
	}
	field.CreatedAt = now
	field.UpdatedAt = now

	if err := s.db.Create(field).Error; err != nil {
		return nil, fmt.Errorf("failed to create custom field: %w", err)
	}

	return field, nil
}

func (s *CustomFieldService) Update(id uint, req *CustomFieldRequest) (*models.CustomField, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := validateConfiguration(req.Type, req.FieldConfig); err != nil {
		return nil, err
	}

	var field models.CustomField
	if err := s.db.First(&field, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.CustomField
	if err := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldNameTaken, req.Name)
	}

	field.Name = req.Name
	field.Type = req.Type
	field.Description = req.Description
	field.FieldConfig = (*models.FieldConfig)(req.FieldConfig)
	field.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&field).Error; err != nil {
		return nil, fmt.Errorf("failed to update custom field: %w", err)
	}

	return &field, nil
}

func (s *CustomFieldService) Get(id uint) (*models.CustomField, error) {
	var field models.CustomField
	if err := s.db.First(&field, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &field, nil
}

func (s *CustomFieldService) List(params utils.PaginationParams) ([]models.CustomField, int64, error) {
	params = s.clamp(params)

	query := s.db.Model(&models.CustomField{})
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count custom fields: %w", err)
	}

	var fields []models.CustomField
	if err := utils.ApplyPagination(query.Order("id ASC"), params).Find(&fields).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch custom fields: %w", err)
	}

	return fields, total, nil
}

// Delete removes a field definition. It is blocked while any category or
// listing still references the field; the caller must detach it first.
func (s *CustomFieldService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var field models.CustomField
		if err := tx.First(&field, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var categoryRefs int64
		if err := tx.Table("category_custom_fields").Where("custom_field_id = ?", id).Count(&categoryRefs).Error; err != nil {
			return fmt.Errorf("failed to count category references: %w", err)
		}
		if categoryRefs > 0 {
			return fmt.Errorf("%w: %d categories use field %q", ErrFieldInUse, categoryRefs, field.Name)
		}

		var listingRefs int64
		if err := tx.Model(&models.ListingCustomField{}).Where("custom_field_id = ?", id).Count(&listingRefs).Error; err != nil {
			return fmt.Errorf("failed to count listing references: %w", err)
		}
		if listingRefs > 0 {
			return fmt.Errorf("%w: %d listings carry a value for field %q", ErrFieldInUse, listingRefs, field.Name)
		}

		if err := tx.Delete(&field).Error; err != nil {
			return fmt.Errorf("failed to delete custom field: %w", err)
		}
		return nil
	})
}

func (s *CustomFieldService) clamp(params utils.PaginationParams) utils.PaginationParams {
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

// validateConfiguration maps registry failures onto the service error
// taxonomy so handlers can match them with errors.Is.
func validateConfiguration(t fieldtypes.Type, cfg *fieldtypes.Config) error {
	err := fieldtypes.ValidateConfiguration(t, cfg)
	if err == nil {
		return nil
	}
	if errors.Is(err, fieldtypes.ErrUnsupportedType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFieldType, t)
	}
	return fmt.Errorf("%w: %v", ErrInvalidFieldConfiguration, err)
}
