// internal/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/adsworks/ads-backend/internal/fieldtypes"
	"github.com/adsworks/ads-backend/internal/models"
)

// Seed loads the demo directory: a user, the car and real-estate field
// definitions, and the two categories that use them. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	logrus.Info("Seeding initial data")

	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUser(tx); err != nil {
			return err
		}
		if err := seedCustomFields(tx); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		return nil
	})
}

func seedUser(tx *gorm.DB) error {
	var count int64
	tx.Model(&models.User{}).Where("email = ?", "jd@email.com").Count(&count)
	if count > 0 {
		logrus.Info("User data already seeded")
		return nil
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:     "John",
		LastName: "Dow",
		Email:    "jd@email.com",
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := user.SetPassword("pass"); err != nil {
		return fmt.Errorf("failed to hash seed user password: %w", err)
	}

	if err := tx.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create seed user: %w", err)
	}
	return nil
}

func seedCustomFields(tx *gorm.DB) error {
	fields := []models.CustomField{
		{
			Name:        "Car Make",
			Type:        fieldtypes.TypeSelect,
			Description: "Car make",
			FieldConfig: &models.FieldConfig{
				Placeholder: "car make",
				Options: []fieldtypes.Option{
					{Label: "Toyota", Value: "Toyota"},
					{Label: "Honda", Value: "Honda"},
					{Label: "BMW", Value: "BMW"},
					{Label: "Mercedes", Value: "Mercedes"},
				},
			},
		},
		{
			Name:        "Car Fuel Type",
			Type:        fieldtypes.TypeSelect,
			Description: "Car fuel type",
			FieldConfig: &models.FieldConfig{
				Placeholder: "car fuel type",
				Options: []fieldtypes.Option{
					{Label: "Petrol", Value: "Petrol"},
					{Label: "Diesel", Value: "Diesel"},
					{Label: "Electric", Value: "Electric"},
				},
			},
		},
		{
			Name:        "Bedrooms",
			Type:        fieldtypes.TypeNumber,
			Description: "Number of bedrooms",
			FieldConfig: &models.FieldConfig{Placeholder: "Number of bedrooms"},
		},
		{
			Name:        "Bathrooms",
			Type:        fieldtypes.TypeNumber,
			Description: "Number of bathrooms",
			FieldConfig: &models.FieldConfig{Placeholder: "Number of bathrooms"},
		},
	}

	now := time.Now().UTC()
	for i := range fields {
		var count int64
		tx.Model(&models.CustomField{}).Where("name = ?", fields[i].Name).Count(&count)
		if count > 0 {
			continue
		}

		fields[i].CreatedAt = now
		fields[i].UpdatedAt = now
		if err := tx.Create(&fields[i]).Error; err != nil {
			return fmt.Errorf("failed to seed custom field %q: %w", fields[i].Name, err)
		}
	}
	return nil
}

func seedCategories(tx *gorm.DB) error {
	categories := map[string]struct {
		description string
		fieldNames  []string
	}{
		"Cars":        {"Cars category", []string{"Car Make", "Car Fuel Type"}},
		"Real Estate": {"Real Estate category", []string{"Bedrooms", "Bathrooms"}},
	}

	now := time.Now().UTC()
	for name, def := range categories {
		var count int64
		tx.Model(&models.Category{}).Where("name = ?", name).Count(&count)
		if count > 0 {
			continue
		}

		var fields []models.CustomField
		if err := tx.Where("name IN ?", def.fieldNames).Find(&fields).Error; err != nil {
			return fmt.Errorf("failed to resolve seed fields for %q: %w", name, err)
		}

		category := &models.Category{
			Name:        name,
			Description: def.description,
		}
		category.CreatedAt = now
		category.UpdatedAt = now

		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		if err := tx.Model(category).Association("CustomFields").Replace(fields); err != nil {
			return fmt.Errorf("failed to associate seed fields for %q: %w", name, err)
		}
	}
	return nil
}
