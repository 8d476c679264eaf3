// internal/services/attribute_binder.go
package services

import (
	"errors"
	"fmt"

	"github.com/adsworks/ads-backend/internal/fieldtypes"
	"github.com/adsworks/ads-backend/internal/models"
)

// AttributeBinder validates proposed (field, value) pairs against a listing's
// category and produces the association records to persist. A field that is
// not configured on the category can never be bound, and no partial binding
// is ever committed: one bad pair rejects the whole batch.
type AttributeBinder struct{}

func NewAttributeBinder() *AttributeBinder {
	return &AttributeBinder{}
}

// AttributeValueInput is one proposed (field, value) pair from the caller.
type AttributeValueInput struct {
	ID    uint   `json:"id" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Bind checks every proposed pair against the category's field set and each
// field's declared type. The category must arrive with its CustomFields
// resolved. Returns the full set of records to write for the listing.
func (b *AttributeBinder) Bind(category *models.Category, listingID uint, proposed []AttributeValueInput) ([]models.ListingCustomField, error) {
	if len(proposed) == 0 {
		return nil, nil
	}

	applicable := category.FieldIDSet()
	seen := make(map[uint]struct{}, len(proposed))
	records := make([]models.ListingCustomField, 0, len(proposed))

	for _, pv := range proposed {
		if _, dup := seen[pv.ID]; dup {
			return nil, fmt.Errorf("%w: field %d", ErrDuplicateField, pv.ID)
		}
		seen[pv.ID] = struct{}{}

		field, ok := applicable[pv.ID]
		if !ok {
			return nil, fmt.Errorf("%w: field %d is not configured on category %q", ErrFieldNotApplicable, pv.ID, category.Name)
		}

		if err := fieldtypes.ValidateValue(field.Type, field.FieldConfig.Registry(), pv.Value); err != nil {
			if errors.Is(err, fieldtypes.ErrValueMismatch) {
				return nil, fmt.Errorf("%w: field %q: %v", ErrTypeMismatch, field.Name, err)
			}
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}

		records = append(records, models.ListingCustomField{
			ListingID:     listingID,
			CustomFieldID: pv.ID,
			Value:         pv.Value,
		})
	}

	return records, nil
}
