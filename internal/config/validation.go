package config

import (
	"net/url"
)

// Validate checks the merged configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateAPI(&cfg.API)...)
	errs = append(errs, validateUI(&cfg.UI)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateAPI checks the backend connection settings.
func validateAPI(api *APIConfig) []ValidationError {
	var errs []ValidationError

	u, err := url.Parse(api.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "must be an absolute http(s) URL",
			Value:   api.BaseURL,
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "scheme must be http or https",
			Value:   api.BaseURL,
		})
	}

	if api.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_seconds",
			Message: "must be a positive number of seconds",
			Value:   api.TimeoutSeconds,
		})
	}

	return errs
}

// validateUI checks the rendering settings.
func validateUI(ui *UIConfig) []ValidationError {
	if ui.Currency == "" {
		return nil // empty falls back to the default at render time
	}
	if len(ui.Currency) != 3 {
		return []ValidationError{{
			Field:   "ui.currency",
			Message: "must be a three-letter ISO 4217 code",
			Value:   ui.Currency,
		}}
	}
	return nil
}
