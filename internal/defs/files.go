package defs

// File and directory names used across the client.
const (
	// ConfigDirName is the per-user configuration directory under the
	// OS config root (e.g. ~/.config/shopfront).
	ConfigDirName = "shopfront"

	// ConfigYAML is the main configuration file inside the config dir.
	ConfigYAML = "config.yaml"

	// TokenFile holds the persisted bearer credential. It is the durable
	// storage that keeps a session alive across client restarts.
	TokenFile = "token"
)

// Environment variable names.
const (
	// EnvConfigDir overrides the configuration directory location.
	EnvConfigDir = "SHOPFRONT_CONFIG_DIR"

	// EnvAPIBaseURL overrides the backend base URL from config.
	EnvAPIBaseURL = "SHOPFRONT_API_BASE_URL"

	// EnvNoColor disables colored output when set to a truthy value.
	EnvNoColor = "SHOPFRONT_NO_COLOR"
)
