package config

// Config is the root configuration aggregate.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend REST base URL, including the API prefix
	// (e.g. http://localhost:3000/api).
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// UIConfig configures rendering behavior.
type UIConfig struct {
	NoColor bool `yaml:"no_color"`

	// Currency is the ISO 4217 code used when formatting prices.
	Currency string `yaml:"currency"`
}

// Default value constants to avoid magic numbers and strings.
const (
	DefaultBaseURL        = "http://localhost:3000/api"
	DefaultTimeoutSeconds = 10
	DefaultCurrency       = "USD"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		UI: UIConfig{
			Currency: DefaultCurrency,
		},
	}
}
