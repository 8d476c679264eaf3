// internal/fieldtypes/registry_test.go
package fieldtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func selectConfig(values ...string) *Config {
	cfg := &Config{}
	for _, v := range values {
		cfg.Options = append(cfg.Options, Option{Label: v, Value: v})
	}
	return cfg
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		t       Type
		cfg     *Config
		wantErr error
	}{
		{"text without config", TypeText, nil, nil},
		{"textarea without config", TypeTextarea, nil, nil},
		{"number with placeholder", TypeNumber, &Config{Placeholder: "Number of bedrooms"}, nil},
		{"select with options", TypeSelect, selectConfig("Petrol", "Diesel"), nil},
		{"select without config", TypeSelect, nil, ErrInvalidConfiguration},
		{"select with empty options", TypeSelect, &Config{}, ErrInvalidConfiguration},
		{"select with duplicate values", TypeSelect, selectConfig("Petrol", "Petrol"), ErrInvalidConfiguration},
		{"select with empty option value", TypeSelect, &Config{Options: []Option{{Label: "x", Value: ""}}}, ErrInvalidConfiguration},
		{"unknown type", Type("date"), nil, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfiguration(tt.t, tt.cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	fuel := selectConfig("Petrol", "Diesel", "Electric")

	tests := []struct {
		name    string
		t       Type
		cfg     *Config
		value   string
		wantErr error
	}{
		{"text accepts anything", TypeText, nil, "2020 Civic", nil},
		{"number accepts integer", TypeNumber, nil, "3", nil},
		{"number accepts float", TypeNumber, nil, "2.5", nil},
		{"number rejects words", TypeNumber, nil, "three", ErrValueMismatch},
		{"select accepts configured option", TypeSelect, fuel, "Petrol", nil},
		{"select rejects unconfigured value", TypeSelect, fuel, "Hydrogen", ErrValueMismatch},
		{"select rejects label lookalike", TypeSelect, fuel, "petrol", ErrValueMismatch},
		{"select with nil config rejects", TypeSelect, nil, "Petrol", ErrValueMismatch},
		{"unknown type", Type("date"), nil, "2024-01-01", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.t, tt.cfg, tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
