package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps engine settings in a TOML file. Nested tables are
// flattened on load, so [ai] model = "x" is addressed as "ai.model".
//
// Keys the engine reads:
//
//	ai.base_url, ai.api_key, ai.model, ai.temperature
//	search.catalogs, search.cache_ttl_minutes, search.analysis_delay_ms
//	search.dataset, storage.data_dir
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens (or starts) the settings file under configDir,
// defaulting to ~/.chanscout when empty.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".chanscout")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path:   filepath.Join(configDir, "config.toml"),
		values: make(map[string]any),
	}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value and whether the key exists.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns a string value, "" when absent or mistyped.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt returns an integer value, 0 when absent or mistyped.
// TOML integers decode as int64.
func (s *ConfigStore) GetInt(key string) int {
	switch v, _ := s.Get(key); v := v.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetBool returns a boolean value, false when absent or mistyped.
func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.Get(key)
	b, _ := v.(bool)
	return b
}

// GetFloat returns a numeric value as float64. Whole numbers decode
// from TOML as int64 and are widened here.
func (s *ConfigStore) GetFloat(key string) float64 {
	switch v, _ := s.Get(key); v := v.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// GetStringSlice returns a string list, nil when absent or mistyped.
// TOML arrays decode as []any; non-string elements are dropped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	switch v, _ := s.Get(key); v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores one value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.write()
}

// Save writes the current settings out.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write serializes under the caller's lock. Mode 0600: the file may
// hold an API key.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load reads the settings file back in. A missing file means empty
// settings, not an error.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.values = make(map[string]any)
		return nil
	}
	if err != nil {
		return err
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	s.values = make(map[string]any)
	flattenInto(s.values, parsed, "")
	return nil
}

// flattenInto rewrites nested tables as dotted keys in place:
// {"ai": {"model": x}} becomes {"ai.model": x}.
func flattenInto(dst map[string]any, src map[string]any, prefix string) {
	for key, value := range src {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flattenInto(dst, table, key)
			continue
		}
		dst[key] = value
	}
}

// Path reports where the settings live.
func (s *ConfigStore) Path() string {
	return s.path
}
