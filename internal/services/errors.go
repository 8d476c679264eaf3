// internal/services/errors.go
package services

import "errors"

// Typed failures returned by the entity services and the attribute binder.
// Handlers map them to HTTP statuses with errors.Is; the services never
// silently default or drop an invalid attribute.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrFieldNotFound    = errors.New("custom field not found")
	ErrUserNotFound     = errors.New("user not found")

	// Referential integrity violations on create/update.
	ErrUnknownField = errors.New("unknown custom field")

	// Field-definition-level schema violations.
	ErrInvalidFieldConfiguration = errors.New("invalid field configuration")
	ErrUnsupportedFieldType      = errors.New("unsupported field type")
	ErrFieldNameTaken            = errors.New("custom field name already taken")

	// Attribute binding violations.
	ErrFieldNotApplicable = errors.New("field not applicable to category")
	ErrTypeMismatch       = errors.New("value does not match field type")
	ErrDuplicateField     = errors.New("duplicate field in attribute set")

	// Deletion blocked by live references.
	ErrFieldInUse = errors.New("custom field is still referenced")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")

	ErrPromotionUnpaid = errors.New("promotion payment not completed")
)
