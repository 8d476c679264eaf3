// internal/fieldtypes/registry.go
package fieldtypes

import (
	"errors"
	"fmt"
	"strconv"
)

// Type identifies a custom field type. The admin picks one when defining a
// field; listings can only carry values that validate against it.
type Type string

const (
	TypeText     Type = "text"
	TypeTextarea Type = "textarea"
	TypeNumber   Type = "number"
	TypeSelect   Type = "select"
)

var (
	ErrUnsupportedType      = errors.New("unsupported field type")
	ErrInvalidConfiguration = errors.New("invalid field configuration")
	ErrValueMismatch        = errors.New("value does not match field type")
)

// Option is a single selectable choice for a select field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Config is the type-specific configuration payload of a field definition.
// Select fields require options; the placeholder is optional for every type.
type Config struct {
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// ValidateConfiguration checks that cfg is a valid configuration for the
// given type. A nil cfg is allowed for every type except select.
func ValidateConfiguration(t Type, cfg *Config) error {
	switch t {
	case TypeText, TypeTextarea, TypeNumber:
		return nil
	case TypeSelect:
		if cfg == nil || len(cfg.Options) == 0 {
			return fmt.Errorf("%w: select fields require at least one option", ErrInvalidConfiguration)
		}
		seen := make(map[string]struct{}, len(cfg.Options))
		for _, opt := range cfg.Options {
			if opt.Value == "" {
				return fmt.Errorf("%w: option value must not be empty", ErrInvalidConfiguration)
			}
			if _, dup := seen[opt.Value]; dup {
				return fmt.Errorf("%w: duplicate option value %q", ErrInvalidConfiguration, opt.Value)
			}
			seen[opt.Value] = struct{}{}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
}

// ValidateValue checks a string-encoded value against the field type and its
// configuration. Pure validation, no I/O.
func ValidateValue(t Type, cfg *Config, value string) error {
	switch t {
	case TypeText, TypeTextarea:
		return nil
	case TypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrValueMismatch, value)
		}
		return nil
	case TypeSelect:
		if cfg != nil {
			for _, opt := range cfg.Options {
				if opt.Value == value {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %q is not a configured option", ErrValueMismatch, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
}
