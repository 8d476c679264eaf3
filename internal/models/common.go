// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields. Timestamps are assigned explicitly by the
// services on create/update rather than through ORM lifecycle hooks.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
