package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const appName = "cinelist"

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	View    ViewConfig    `mapstructure:"view"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds the local database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps data in memory only
}

// ViewConfig holds list display defaults
type ViewConfig struct {
	Sort     string `mapstructure:"sort"`     // "alphabetical" or "year"
	Language string `mapstructure:"language"` // BCP 47 tag used for title collation
}

// ViewerConfig holds the external program used to open poster URLs
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty uses the system default handler
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		View: ViewConfig{
			Sort:     string(domain.SortAlphabetical),
			Language: "und",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

func defaultDataPath() string {
	return filepath.Join(xdg.DataHome, appName, appName+".db")
}

func defaultLogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// newViper creates a viper instance with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("view.sort", def.View.Sort)
	v.SetDefault("view.language", def.View.Language)
	v.SetDefault("viewer.command", def.Viewer.Command)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides, e.g. CINELIST_STORAGE_PATH
	v.SetEnvPrefix("CINELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from the default locations and environment.
// A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadConfigFile loads configuration from an explicit file
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default location if path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("view.sort", cfg.View.Sort)
	v.Set("view.language", cfg.View.Language)
	v.Set("viewer.command", cfg.Viewer.Command)
	if len(cfg.Viewer.Args) > 0 {
		v.Set("viewer.args", cfg.Viewer.Args)
	}
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be caught by unmarshalling
func (c *Config) Validate() error {
	if _, err := domain.ParseSortMode(c.View.Sort); err != nil {
		return fmt.Errorf("invalid view.sort: %w", err)
	}
	if c.View.Language == "" {
		return nil
	}
	if _, err := language.Parse(c.View.Language); err != nil {
		return fmt.Errorf("invalid view.language %q: %w", c.View.Language, err)
	}
	return nil
}

// SortMode returns the configured default sort
func (c *Config) SortMode() domain.SortMode {
	mode, err := domain.ParseSortMode(c.View.Sort)
	if err != nil {
		return domain.SortAlphabetical
	}
	return mode
}

// LanguageTag returns the configured collation language
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.View.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
