// internal/models/category.go
package models

// Category groups listings and declares which custom fields apply to them.
// The field association is many-to-many: one definition (e.g. "Bedrooms")
// may apply to several categories.
type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"size:200"`

	CustomFields []CustomField `json:"custom_fields,omitempty" gorm:"many2many:category_custom_fields"`
}

// FieldIDSet returns the ids of the associated field definitions, keyed for
// applicability checks.
func (c *Category) FieldIDSet() map[uint]*CustomField {
	set := make(map[uint]*CustomField, len(c.CustomFields))
	for i := range c.CustomFields {
		set[c.CustomFields[i].ID] = &c.CustomFields[i]
	}
	return set
}
