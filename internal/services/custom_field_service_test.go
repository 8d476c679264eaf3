// internal/services/custom_field_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsworks/ads-backend/internal/fieldtypes"
)

func TestCustomFieldCreate(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewCustomFieldService(db, cfg)

	field := selectField(t, svc, "Car Fuel Type", "Petrol", "Diesel", "Electric")
	assert.NotZero(t, field.ID)
	assert.Equal(t, fieldtypes.TypeSelect, field.Type)
	require.NotNil(t, field.FieldConfig)
	assert.Len(t, field.FieldConfig.Options, 3)

	got, err := svc.Get(field.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FieldConfig)
	assert.Equal(t, "Petrol", got.FieldConfig.Options[0].Value)
}

func TestCustomFieldCreateSelectWithoutOptions(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomFieldService(db, newTestConfig())

	_, err := svc.Create(&CustomFieldRequest{
		Name:        "Broken",
		Type:        fieldtypes.TypeSelect,
		FieldConfig: &fieldtypes.Config{},
	})
	assert.ErrorIs(t, err, ErrInvalidFieldConfiguration)
}

func TestCustomFieldCreateUnsupportedType(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomFieldService(db, newTestConfig())

	_, err := svc.Create(&CustomFieldRequest{
		Name: "When",
		Type: fieldtypes.Type("date"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)
}

func TestCustomFieldNameTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomFieldService(db, newTestConfig())

	numberField(t, svc, "Bedrooms")

	_, err := svc.Create(&CustomFieldRequest{
		Name: "Bedrooms",
		Type: fieldtypes.TypeNumber,
	})
	assert.ErrorIs(t, err, ErrFieldNameTaken)
}

func TestCustomFieldUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomFieldService(db, newTestConfig())

	field := numberField(t, svc, "Bedrooms")

	updated, err := svc.Update(field.ID, &CustomFieldRequest{
		Name:        "Bedroom Count",
		Type:        fieldtypes.TypeNumber,
		Description: "Number of bedrooms",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bedroom Count", updated.Name)

	_, err = svc.Update(9999, &CustomFieldRequest{
		Name: "Ghost",
		Type: fieldtypes.TypeText,
	})
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestCustomFieldDeleteBlockedByCategory(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	fieldSvc := NewCustomFieldService(db, cfg)
	categorySvc := NewCategoryService(db, cfg)

	field := numberField(t, fieldSvc, "Bedrooms")

	_, err := categorySvc.Create(&CategoryRequest{
		Name:         "Real Estate",
		CustomFields: []uint{field.ID},
	})
	require.NoError(t, err)

	err = fieldSvc.Delete(field.ID)
	assert.ErrorIs(t, err, ErrFieldInUse)

	// Definition and association stay intact.
	got, err := fieldSvc.Get(field.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bedrooms", got.Name)
}

func TestCustomFieldDeleteBlockedByListing(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	fieldSvc := NewCustomFieldService(db, cfg)
	categorySvc := NewCategoryService(db, cfg)
	listingSvc := NewListingService(db, cfg, NewAttributeBinder())

	field := numberField(t, fieldSvc, "Bedrooms")
	category, err := categorySvc.Create(&CategoryRequest{
		Name:         "Real Estate",
		CustomFields: []uint{field.ID},
	})
	require.NoError(t, err)

	listing, err := listingSvc.Create(&ListingRequest{
		Name:       "Cozy flat",
		Price:      120000,
		CategoryID: category.ID,
		CustomFields: []AttributeValueInput{
			{ID: field.ID, Value: "3"},
		},
	})
	require.NoError(t, err)

	// Detach the field from the category; the listing value alone still
	// blocks deletion.
	_, err = categorySvc.Update(category.ID, &CategoryRequest{Name: "Real Estate"})
	require.NoError(t, err)

	err = fieldSvc.Delete(field.ID)
	assert.ErrorIs(t, err, ErrFieldInUse)

	got, err := listingSvc.Get(listing.ID)
	require.NoError(t, err)
	require.Len(t, got.CustomFields, 1)
	assert.Equal(t, "3", got.CustomFields[0].Value)
}

func TestCustomFieldDeleteUnreferenced(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomFieldService(db, newTestConfig())

	field := numberField(t, svc, "Bathrooms")
	require.NoError(t, svc.Delete(field.ID))

	_, err := svc.Get(field.ID)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	assert.ErrorIs(t, svc.Delete(field.ID), ErrFieldNotFound)
}

func TestCustomFieldListPagination(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.App.MaxPageSize = 3
	svc := NewCustomFieldService(db, cfg)

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		numberField(t, svc, name)
	}

	fields, total, err := svc.List(paginationParams(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	// Page size is clamped to the configured maximum.
	assert.Len(t, fields, 3)
	assert.Equal(t, "A", fields[0].Name)

	fields, _, err = svc.List(paginationParams(2, 3))
	require.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "D", fields[0].Name)
}
