// Package config handles verification configuration stored in
// ~/.config/refcheck/config.yml, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the scoring cutoffs used by matching and comparison.
type Thresholds struct {
	// Floor is the minimum composite score for a candidate to be
	// considered at all.
	Floor float64 `yaml:"floor,omitempty"`
	// Accept is the minimum composite score to accept the top candidate.
	Accept float64 `yaml:"accept,omitempty"`
	// Separation is the minimum score margin between the top two
	// candidates for an unambiguous match.
	Separation float64 `yaml:"separation,omitempty"`
	// StrictTitle is the title similarity below which a title mismatch
	// is reported as an error.
	StrictTitle float64 `yaml:"strict_title,omitempty"`
	// Venue is the venue similarity below which a venue mismatch is
	// reported as a warning.
	Venue float64 `yaml:"venue,omitempty"`
}

// Config represents configuration stored in ~/.config/refcheck/config.yml.
type Config struct {
	// Providers lists sources in query priority order.
	Providers []string `yaml:"providers,omitempty"`
	// Workers is the number of references verified concurrently.
	Workers int `yaml:"workers,omitempty"`
	// TimeoutSeconds bounds each provider query.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// S2APIKey raises Semantic Scholar rate limits when set.
	S2APIKey string `yaml:"s2_api_key,omitempty"`
	// Mailto joins the OpenAlex polite pool when set.
	Mailto string `yaml:"mailto,omitempty"`
	// LocalDBPath points at an offline SQLite paper database.
	LocalDBPath string `yaml:"local_db_path,omitempty"`

	Thresholds Thresholds `yaml:"thresholds,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "refcheck"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// KnownProviders lists the valid provider names in default priority order.
var KnownProviders = []string{"localdb", "semanticscholar", "openalex", "arxiv"}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Providers:      []string{"semanticscholar", "openalex", "arxiv"},
		Workers:        4,
		TimeoutSeconds: 30,
		Thresholds: Thresholds{
			Floor:       0.5,
			Accept:      0.6,
			Separation:  0.08,
			StrictTitle: 0.85,
			Venue:       0.4,
		},
	}
}

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/refcheck/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// configCache caches the loaded config.
var configCache *Config

// Load loads the configuration file, applies defaults for unset fields,
// then applies environment overrides. Returns the defaults (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := Default()

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
			cfg.merge(&fileCfg)
		}
	}

	cfg.applyEnv()

	if cfg.LocalDBPath != "" {
		cfg.LocalDBPath = ExpandTilde(cfg.LocalDBPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// merge overlays non-zero fields from other.
func (c *Config) merge(other *Config) {
	if len(other.Providers) > 0 {
		c.Providers = other.Providers
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.TimeoutSeconds != 0 {
		c.TimeoutSeconds = other.TimeoutSeconds
	}
	if other.S2APIKey != "" {
		c.S2APIKey = other.S2APIKey
	}
	if other.Mailto != "" {
		c.Mailto = other.Mailto
	}
	if other.LocalDBPath != "" {
		c.LocalDBPath = other.LocalDBPath
	}
	t := &c.Thresholds
	o := other.Thresholds
	if o.Floor != 0 {
		t.Floor = o.Floor
	}
	if o.Accept != 0 {
		t.Accept = o.Accept
	}
	if o.Separation != 0 {
		t.Separation = o.Separation
	}
	if o.StrictTitle != 0 {
		t.StrictTitle = o.StrictTitle
	}
	if o.Venue != 0 {
		t.Venue = o.Venue
	}
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("S2_API_KEY"); v != "" {
		c.S2APIKey = v
	}
	if v := os.Getenv("REFCHECK_MAILTO"); v != "" {
		c.Mailto = v
	}
	if v := os.Getenv("REFCHECK_LOCAL_DB"); v != "" {
		c.LocalDBPath = v
	}
	if v := os.Getenv("REFCHECK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// Validate checks provider names and threshold ranges.
func (c *Config) Validate() error {
	for _, p := range c.Providers {
		if !knownProvider(p) {
			return fmt.Errorf("unknown provider: %s (valid: %v)", p, KnownProviders)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds)
	}
	t := c.Thresholds
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"floor", t.Floor},
		{"accept", t.Accept},
		{"separation", t.Separation},
		{"strict_title", t.StrictTitle},
		{"venue", t.Venue},
	} {
		if check.value < 0 || check.value > 1 {
			return fmt.Errorf("threshold %s must be in [0, 1], got %g", check.name, check.value)
		}
	}
	if t.Floor > t.Accept {
		return fmt.Errorf("threshold floor (%g) must not exceed accept (%g)", t.Floor, t.Accept)
	}
	return nil
}

func knownProvider(name string) bool {
	for _, p := range KnownProviders {
		if p == name {
			return true
		}
	}
	return false
}

// Save writes the configuration to the config file, creating the
// directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandTilde expands ~ to the user's home directory. Returns the
// original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
