package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/daylight"
)

// Config aggregates runtime configuration for the daylight server and CLI.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Gazetteer GazetteerConfig `yaml:"gazetteer"`
	Compare   CompareConfig   `yaml:"compare"`
	Cache     CacheConfig     `yaml:"cache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// GazetteerConfig selects where place names are resolved. File entries are
// merged over the built-in table; a SQLite path, when set, takes precedence
// and is seeded with the merged table on startup.
type GazetteerConfig struct {
	File       string `yaml:"file"`
	SQLitePath string `yaml:"sqlitePath"`
}

// CompareConfig drives multi-location comparisons.
type CompareConfig struct {
	MaxLocations       int    `yaml:"maxLocations"`
	DefaultGranularity string `yaml:"defaultGranularity"`
}

// CacheConfig controls memoization of built years. Disabled by default.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"maxEntries"` // oldest year evicted beyond this
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GAZETTEER_FILE"); v != "" {
		cfg.Gazetteer.File = v
	}
	if v := os.Getenv("GAZETTEER_DB"); v != "" {
		cfg.Gazetteer.SQLitePath = v
	}
	if v := os.Getenv("COMPARE_MAX_LOCATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Compare.MaxLocations = parsed
		}
	}
	if v := os.Getenv("COMPARE_DEFAULT_GRANULARITY"); v != "" {
		cfg.Compare.DefaultGranularity = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.Enabled = true
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Compare: CompareConfig{
			MaxLocations:       daylight.MaxLocations,
			DefaultGranularity: string(daylight.Weekly),
		},
		Cache: CacheConfig{
			MaxEntries: daylight.DefaultCacheEntries,
		},
	}
}

// Validate ensures required fields are populated.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address is required")
	}
	if c.Compare.MaxLocations < 1 {
		return errors.New("compare.maxLocations must be at least 1")
	}
	if _, err := daylight.ParseGranularity(c.Compare.DefaultGranularity); err != nil {
		return fmt.Errorf("compare.defaultGranularity: %w", err)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return errors.New("cache.maxEntries must be at least 1 when the cache is enabled")
	}
	return nil
}

// Granularity returns the configured default granularity.
func (c *Config) Granularity() daylight.Granularity {
	g, err := daylight.ParseGranularity(c.Compare.DefaultGranularity)
	if err != nil {
		return daylight.Weekly
	}
	return g
}

// BuilderOptions translates the config into daylight.Builder options.
func (c *Config) BuilderOptions() []daylight.BuilderOption {
	opts := []daylight.BuilderOption{daylight.WithMaxLocations(c.Compare.MaxLocations)}
	if c.Cache.Enabled {
		opts = append(opts, daylight.WithCache(c.Cache.TTL), daylight.WithCacheLimit(c.Cache.MaxEntries))
	}
	return opts
}
