// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/fieldtypes"
	"github.com/adsworks/ads-backend/internal/models"
	"github.com/adsworks/ads-backend/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CustomField{},
		&models.Category{},
		&models.Listing{},
		&models.ListingCustomField{},
		&models.ListingImage{},
	))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 1,
		},
		App: config.AppConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
	}
}

func paginationParams(page, limit int) utils.PaginationParams {
	return utils.PaginationParams{Page: page, Limit: limit}
}

func selectField(t *testing.T, svc *CustomFieldService, name string, values ...string) *models.CustomField {
	t.Helper()

	cfg := &fieldtypes.Config{}
	for _, v := range values {
		cfg.Options = append(cfg.Options, fieldtypes.Option{Label: v, Value: v})
	}

	field, err := svc.Create(&CustomFieldRequest{
		Name:        name,
		Type:        fieldtypes.TypeSelect,
		Description: name,
		FieldConfig: cfg,
	})
	require.NoError(t, err)
	return field
}

func numberField(t *testing.T, svc *CustomFieldService, name string) *models.CustomField {
	t.Helper()

	field, err := svc.Create(&CustomFieldRequest{
		Name:        name,
		Type:        fieldtypes.TypeNumber,
		Description: name,
		FieldConfig: &fieldtypes.Config{Placeholder: name},
	})
	require.NoError(t, err)
	return field
}
