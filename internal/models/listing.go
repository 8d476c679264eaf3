// internal/models/listing.go
package models

import "time"

// Listing is a classified ad. It belongs to exactly one category and owns
// its custom field values: they are written and cleared with the listing,
// never shared.
type Listing struct {
	BaseModel
	Name          string     `json:"name" gorm:"size:100;not null"`
	Description   string     `json:"description" gorm:"size:200"`
	Price         float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID    uint       `json:"category_id" gorm:"not null;index"`
	Featured      bool       `json:"featured" gorm:"default:false;index"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`

	Category     Category             `json:"category" gorm:"foreignKey:CategoryID"`
	CustomFields []ListingCustomField `json:"custom_fields,omitempty" gorm:"foreignKey:ListingID"`
	Images       []ListingImage       `json:"images,omitempty" gorm:"foreignKey:ListingID"`
}

// ListingCustomField holds one typed value bound to a (listing, field) pair.
// The composite key keeps at most one value per field per listing.
type ListingCustomField struct {
	ListingID     uint   `json:"listing_id" gorm:"primaryKey"`
	CustomFieldID uint   `json:"custom_field_id" gorm:"primaryKey"`
	Value         string `json:"value" gorm:"size:200;not null"`

	CustomField CustomField `json:"custom_field,omitempty" gorm:"foreignKey:CustomFieldID"`
}

func (ListingCustomField) TableName() string {
	return "listing_custom_fields"
}

// ListingImage is an uploaded photo attached to a listing.
type ListingImage struct {
	BaseModel
	ListingID  uint   `json:"listing_id" gorm:"not null;index"`
	URL        string `json:"url" gorm:"size:500;not null"`
	StorageKey string `json:"-" gorm:"size:255"`
}
