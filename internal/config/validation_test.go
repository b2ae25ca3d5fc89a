package config

import (
	"errors"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("Validate(defaults) = %v, want nil", err)
	}
}

func TestValidateBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		valid   bool
	}{
		{"http URL", "http://localhost:3000/api", true},
		{"https URL", "https://shop.example.com/api", true},
		{"relative path", "/api", false},
		{"missing scheme", "localhost:3000/api", false},
		{"unsupported scheme", "ftp://example.com/api", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewDefaultConfig()
			cfg.API.BaseURL = tt.baseURL
			err := Validate(cfg)
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.API.TimeoutSeconds = 0
	if err := Validate(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate(zero timeout) = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		currency string
		valid    bool
	}{
		{"USD", "USD", true},
		{"EUR", "EUR", true},
		{"empty falls back", "", true},
		{"too long", "DOLLARS", false},
		{"too short", "US", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewDefaultConfig()
			cfg.UI.Currency = tt.currency
			err := Validate(cfg)
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
