// internal/models/custom_field.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/adsworks/ads-backend/internal/fieldtypes"
)

// CustomField is an administrator-defined attribute that categories declare
// and listings fill in. The configuration payload is type-specific and is
// validated by the fieldtypes registry before it is persisted.
type CustomField struct {
	BaseModel
	Name        string          `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Type        fieldtypes.Type `json:"type" gorm:"type:varchar(20);not null"`
	Description string          `json:"description" gorm:"size:200"`
	FieldConfig *FieldConfig    `json:"field_config" gorm:"type:jsonb"`

	Categories []Category `json:"categories,omitempty" gorm:"many2many:category_custom_fields"`
}

// FieldConfig stores a fieldtypes.Config as a JSON column.
type FieldConfig fieldtypes.Config

func (fc *FieldConfig) Value() (driver.Value, error) {
	if fc == nil {
		return nil, nil
	}
	return json.Marshal(fc)
}

func (fc *FieldConfig) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported field config column type %T", value)
	}

	return json.Unmarshal(data, fc)
}

// Registry returns the config in the shape the fieldtypes registry validates.
func (fc *FieldConfig) Registry() *fieldtypes.Config {
	return (*fieldtypes.Config)(fc)
}
