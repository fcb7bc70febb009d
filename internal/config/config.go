package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"farmdir/internal/domain"
)

// Environment variables that override the config file
const (
	EnvAPIURL    = "FARMDIR_API_URL"
	EnvAssetsURL = "FARMDIR_ASSETS_URL"
	EnvLogLevel  = "FARMDIR_LOG_LEVEL"
	EnvLogFile   = "FARMDIR_LOG_FILE"
	EnvNoProbe   = "FARMDIR_NO_PROBE"
)

// Config represents the application configuration
type Config struct {
	Version      int               `toml:"version"`
	APIURL       string            `toml:"api_url"`
	AssetsURL    string            `toml:"assets_url"`
	LastLocation string            `toml:"last_location,omitempty"`
	Categories   domain.Vocabulary `toml:"categories,omitempty"`
	Images       ImageSettings     `toml:"images"`
	Log          LogSettings       `toml:"log"`
	UISettings   UISettings        `toml:"ui"`
}

// ImageSettings controls background image probing
type ImageSettings struct {
	Probe       bool     `toml:"probe"`
	Concurrency int      `toml:"concurrency"`
	Timeout     Duration `toml:"timeout"`
}

// LogSettings controls the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	RestoreLastLocation bool `toml:"restore_last_location"`
	ShowImages          bool `toml:"show_images"`
	AutosaveOnExit      bool `toml:"autosave_on_exit"`
}

// Duration is a time.Duration stored as text ("5s") in the config file
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Vocabulary returns the configured categories, or the built-in list
func (c *Config) Vocabulary() domain.Vocabulary {
	if len(c.Categories) == 0 {
		return domain.DefaultVocabulary
	}
	return c.Categories
}

// SlogLevel maps the configured level name to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks values that would make the program unusable
func (c *Config) Validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("api_url is required"))
	}
	seen := make(map[domain.Category]bool)
	for _, cat := range c.Categories {
		if cat.ID == "" {
			errs = append(errs, errors.New("category with empty id"))
			continue
		}
		if strings.Contains(string(cat.ID), ",") {
			errs = append(errs, fmt.Errorf("category %q must not contain a comma", cat.ID))
		}
		if seen[cat.ID] {
			errs = append(errs, fmt.Errorf("duplicate category %q", cat.ID))
		}
		seen[cat.ID] = true
	}
	if c.Images.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("images.concurrency must not be negative, got %d", c.Images.Concurrency))
	}
	return errors.Join(errs...)
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

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "farmdir", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if it doesn't exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveLastLocation records location in the config file. The file is
// reloaded first so environment and flag overrides applied to the running
// config are never written back. It reports whether the file changed.
func SaveLastLocation(cs ConfigService, location string) (bool, error) {
	stored, err := cs.Load()
	if err != nil {
		return false, err
	}
	if stored.LastLocation == location {
		return false, nil
	}
	stored.LastLocation = location
	if err := cs.Save(stored); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		APIURL:    "http://localhost:8787/api",
		AssetsURL: "http://localhost:8787/assets",
		Images: ImageSettings{
			Probe:       true,
			Concurrency: 4,
			Timeout:     Duration(5 * time.Second),
		},
		Log: LogSettings{
			File:  "farmdir.log",
			Level: "info",
		},
		UISettings: UISettings{
			RestoreLastLocation: true,
			ShowImages:          true,
			AutosaveOnExit:      true,
		},
	}
}

// ApplyEnv loads envFile (if present) into the process environment and
// overrides cfg from FARMDIR_* variables. A missing env file is not an error.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := os.LookupEnv(EnvAssetsURL); ok && v != "" {
		cfg.AssetsURL = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		cfg.Log.File = v
	}
	if v, ok := os.LookupEnv(EnvNoProbe); ok {
		noProbe, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoProbe, err)
		}
		cfg.Images.Probe = !noProbe
	}
	return nil
}
