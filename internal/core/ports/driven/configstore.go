package driven

// ConfigStore gives the engine typed access to its settings. Keys are
// flat dotted paths ("ai.model", "search.cache_ttl_minutes"); typed
// getters return the zero value when a key is absent or holds the
// wrong type, so callers fold missing configuration into defaults
// instead of branching on errors.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns a string value, "" when absent or mistyped.
	GetString(key string) string

	// GetInt returns an integer value, 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool returns a boolean value, false when absent or mistyped.
	GetBool(key string) bool

	// GetFloat returns a numeric value as float64, 0 when absent or
	// non-numeric.
	GetFloat(key string) float64

	// GetStringSlice returns a string list, nil when absent or
	// mistyped.
	GetStringSlice(key string) []string

	// Set stores and immediately persists one value.
	Set(key string, value any) error

	// Save writes the current settings out.
	Save() error

	// Load reads the settings back in.
	Load() error

	// Path reports where the settings live.
	Path() string
}
