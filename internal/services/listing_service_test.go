// internal/services/listing_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsworks/ads-backend/internal/models"
)

type listingFixture struct {
	fields     *CustomFieldService
	categories *CategoryService
	listings   *ListingService

	carMake  *models.CustomField
	carFuel  *models.CustomField
	bedrooms *models.CustomField

	cars       *models.Category
	realEstate *models.Category
}

// newListingFixture mirrors the stock seed data: a Cars category with two
// select fields and a Real Estate category with a number field.
func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()

	f := &listingFixture{
		fields:     NewCustomFieldService(db, cfg),
		categories: NewCategoryService(db, cfg),
		listings:   NewListingService(db, cfg, NewAttributeBinder()),
	}

	f.carMake = selectField(t, f.fields, "Car Make", "Honda", "Toyota", "Ford")
	f.carFuel = selectField(t, f.fields, "Car Fuel Type", "Petrol", "Diesel", "Electric")
	f.bedrooms = numberField(t, f.fields, "Bedrooms")

	var err error
	f.cars, err = f.categories.Create(&CategoryRequest{
		Name:         "Cars",
		CustomFields: []uint{f.carMake.ID, f.carFuel.ID},
	})
	require.NoError(t, err)

	f.realEstate, err = f.categories.Create(&CategoryRequest{
		Name:         "Real Estate",
		CustomFields: []uint{f.bedrooms.ID},
	})
	require.NoError(t, err)

	return f
}

func (f *listingFixture) valueMap(l *models.Listing) map[uint]string {
	out := make(map[uint]string, len(l.CustomFields))
	for _, v := range l.CustomFields {
		out[v.CustomFieldID] = v.Value
	}
	return out
}

func TestListingCreateWithAttributes(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
			{ID: f.carFuel.ID, Value: "Petrol"},
		},
	})
	require.NoError(t, err)

	got, err := f.listings.Get(listing.ID)
	require.NoError(t, err)
	require.Len(t, got.CustomFields, 2)

	values := f.valueMap(got)
	assert.Equal(t, "Honda", values[f.carMake.ID])
	assert.Equal(t, "Petrol", values[f.carFuel.ID])
	assert.Equal(t, "Cars", got.Category.Name)
}

func TestListingCreateUnknownCategory(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.listings.Create(&ListingRequest{
		Name:       "Nowhere",
		Price:      1,
		CategoryID: 9999,
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListingCreateFieldNotApplicable(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.bedrooms.ID, Value: "3"},
		},
	})
	assert.ErrorIs(t, err, ErrFieldNotApplicable)

	// All-or-nothing: the listing itself must not exist either.
	_, total, err := f.listings.List(paginationParams(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListingCreateTypeMismatch(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carFuel.ID, Value: "Coal"},
		},
	})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = f.listings.Create(&ListingRequest{
		Name:       "Cozy flat",
		Price:      90000,
		CategoryID: f.realEstate.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.bedrooms.ID, Value: "three"},
		},
	})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestListingCreateDuplicateField(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
			{ID: f.carMake.ID, Value: "Toyota"},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestListingUpdateReplacesAttributeSet(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
			{ID: f.carFuel.ID, Value: "Petrol"},
		},
	})
	require.NoError(t, err)

	// Supplying only one value drops the other; the set is replaced, not
	// merged.
	updated, err := f.listings.Update(listing.ID, &ListingRequest{
		Name:       "Honda Civic 2019",
		Price:      13000,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carFuel.ID, Value: "Diesel"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.CustomFields, 1)
	assert.Equal(t, "Diesel", updated.CustomFields[0].Value)
	assert.Equal(t, "Honda Civic 2019", updated.Name)
	assert.Equal(t, 13000.0, updated.Price)
}

func TestListingUpdateCategoryChangeDiscardsValues(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
		},
	})
	require.NoError(t, err)

	// The old binding is not applicable in the new category.
	_, err = f.listings.Update(listing.ID, &ListingRequest{
		Name:       "Actually a house",
		Price:      90000,
		CategoryID: f.realEstate.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
		},
	})
	assert.ErrorIs(t, err, ErrFieldNotApplicable)

	updated, err := f.listings.Update(listing.ID, &ListingRequest{
		Name:       "Actually a house",
		Price:      90000,
		CategoryID: f.realEstate.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.realEstate.ID, updated.CategoryID)
	assert.Empty(t, updated.CustomFields)
}

func TestListingUpdateSharedFieldAcrossCategories(t *testing.T) {
	f := newListingFixture(t)

	// A second category that shares the Bedrooms field.
	vacation, err := f.categories.Create(&CategoryRequest{
		Name:         "Vacation Rentals",
		CustomFields: []uint{f.bedrooms.ID},
	})
	require.NoError(t, err)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Cozy flat",
		Price:      90000,
		CategoryID: f.realEstate.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.bedrooms.ID, Value: "3"},
		},
	})
	require.NoError(t, err)

	// Moving between categories discards old values even for shared field
	// ids; only values from this call survive.
	updated, err := f.listings.Update(listing.ID, &ListingRequest{
		Name:       "Cozy flat",
		Price:      90000,
		CategoryID: vacation.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.CustomFields)

	updated, err = f.listings.Update(listing.ID, &ListingRequest{
		Name:       "Cozy flat",
		Price:      90000,
		CategoryID: vacation.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.bedrooms.ID, Value: "2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.CustomFields, 1)
	assert.Equal(t, "2", updated.CustomFields[0].Value)
}

func TestListingUpdateNotFound(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.listings.Update(9999, &ListingRequest{
		Name:       "Ghost",
		Price:      1,
		CategoryID: f.cars.ID,
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingDeleteRemovesValues(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
		CustomFields: []AttributeValueInput{
			{ID: f.carMake.ID, Value: "Honda"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.listings.Delete(listing.ID))

	_, err = f.listings.Get(listing.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)

	var count int64
	db := f.listings.db
	require.NoError(t, db.Model(&models.ListingCustomField{}).
		Where("listing_id = ?", listing.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, f.listings.Delete(listing.ID), ErrListingNotFound)
}

func TestListingFeatured(t *testing.T) {
	f := newListingFixture(t)

	plain, err := f.listings.Create(&ListingRequest{
		Name:       "Plain",
		Price:      100,
		CategoryID: f.cars.ID,
	})
	require.NoError(t, err)

	promoted, err := f.listings.Create(&ListingRequest{
		Name:       "Promoted",
		Price:      200,
		CategoryID: f.cars.ID,
	})
	require.NoError(t, err)

	expired, err := f.listings.Create(&ListingRequest{
		Name:       "Expired",
		Price:      300,
		CategoryID: f.cars.ID,
	})
	require.NoError(t, err)

	db := f.listings.db
	until := time.Now().UTC().Add(24 * time.Hour)
	require.NoError(t, db.Model(&models.Listing{}).Where("id = ?", promoted.ID).
		Updates(map[string]interface{}{"featured": true, "featured_until": until}).Error)
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Listing{}).Where("id = ?", expired.ID).
		Updates(map[string]interface{}{"featured": true, "featured_until": past}).Error)

	featured, err := f.listings.Featured(10)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, promoted.ID, featured[0].ID)
	assert.NotEqual(t, plain.ID, featured[0].ID)
}

func TestListingAddImages(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.listings.Create(&ListingRequest{
		Name:       "Honda Civic",
		Price:      12500,
		CategoryID: f.cars.ID,
	})
	require.NoError(t, err)

	got, err := f.listings.AddImages(listing.ID, []UploadResult{
		{Key: "listings/1/a.jpg", URL: "http://localhost/uploads/listings/1/a.jpg"},
		{Key: "listings/1/b.jpg", URL: "http://localhost/uploads/listings/1/b.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, listing.ID, got.Images[0].ListingID)

	_, err = f.listings.AddImages(9999, nil)
	assert.ErrorIs(t, err, ErrListingNotFound)
}
