package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAPIBaseURL   = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Search  SearchConfig `toml:"search"`
	Store   StoreConfig  `toml:"store"`
	Log     LogConfig    `toml:"log"`
}

// APIConfig points at the movie metadata API
type APIConfig struct {
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	// Token is the bearer token. Prefer TMDB_API_TOKEN over writing it to disk.
	Token string `toml:"token,omitempty"`
}

// SearchConfig tunes the search lifecycle
type SearchConfig struct {
	DebounceMS    int `toml:"debounce_ms"`
	TrendingLimit int `toml:"trending_limit"`
}

// Debounce returns the quiescence window as a duration
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// StoreConfig selects and configures the search popularity store
type StoreConfig struct {
	Backend         string `toml:"backend"` // memory, mongo or redis
	TimeoutMS       int    `toml:"timeout_ms"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	RedisURL        string `toml:"redis_url"`
	RedisPrefix     string `toml:"redis_prefix"`
}

// Timeout bounds a single store call
func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service backed by path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/reelfind/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "reelfind", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path. The API token is never written.
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *config
	out.API.Token = ""

	data, err := toml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:      DefaultAPIBaseURL,
			ImageBaseURL: DefaultImageBaseURL,
		},
		Search: SearchConfig{
			DebounceMS:    500,
			TrendingLimit: 5,
		},
		Store: StoreConfig{
			Backend:         "memory",
			TimeoutMS:       5000,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "reelfind",
			MongoCollection: "metrics",
			RedisURL:        "redis://localhost:6379/0",
			RedisPrefix:     "reelfind:",
		},
		Log: LogConfig{
			Level: "info",
			File:  "reelfind.log",
		},
	}
}

// ApplyEnv overrides config values from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	num := func(dst *int, key string) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	str(&c.API.Token, "REELFIND_API_TOKEN", "TMDB_API_TOKEN")
	str(&c.API.BaseURL, "REELFIND_API_BASE_URL")
	str(&c.API.ImageBaseURL, "REELFIND_IMAGE_BASE_URL")
	str(&c.Store.Backend, "REELFIND_STORE_BACKEND")
	str(&c.Store.MongoURI, "REELFIND_MONGO_URI")
	str(&c.Store.RedisURL, "REELFIND_REDIS_URL")
	str(&c.Log.Level, "REELFIND_LOG_LEVEL")
	str(&c.Log.File, "REELFIND_LOG_FILE")

	if err := num(&c.Search.DebounceMS, "REELFIND_DEBOUNCE_MS"); err != nil {
		return err
	}
	if err := num(&c.Search.TrendingLimit, "REELFIND_TRENDING_LIMIT"); err != nil {
		return err
	}

	c.normalize()
	return nil
}

// normalize fills zero values a hand-edited file may leave behind
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.ImageBaseURL == "" {
		c.API.ImageBaseURL = def.API.ImageBaseURL
	}
	if c.Search.DebounceMS <= 0 {
		c.Search.DebounceMS = def.Search.DebounceMS
	}
	if c.Search.TrendingLimit <= 0 {
		c.Search.TrendingLimit = def.Search.TrendingLimit
	}
	if c.Store.TimeoutMS <= 0 {
		c.Store.TimeoutMS = def.Store.TimeoutMS
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
}
