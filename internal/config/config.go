// Package config loads and saves the kyara configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Explorer ExplorerConfig `mapstructure:"explorer"`
	Storage  StorageConfig  `mapstructure:"storage"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig configures the Jikan client.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	PerPage   int           `mapstructure:"per_page" validate:"gte=1,lte=25"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit time.Duration `mapstructure:"rate_limit" validate:"gte=0"`
}

// ExplorerConfig bounds the recommendation aggregator.
type ExplorerConfig struct {
	MaxCharacters int           `mapstructure:"max_characters" validate:"gte=1,lte=25"`
	MaxAnime      int           `mapstructure:"max_anime" validate:"gte=1,lte=50"`
	Delay         time.Duration `mapstructure:"delay" validate:"gte=0"`
	Concurrency   int           `mapstructure:"concurrency" validate:"gte=0"`
}

// StorageConfig locates the favorites database.
type StorageConfig struct {
	Path      string `mapstructure:"path" validate:"required_unless=Ephemeral true"`
	Key       string `mapstructure:"key" validate:"required"`
	Ephemeral bool   `mapstructure:"ephemeral"`
}

// UIConfig holds the initial view settings of the TUI.
type UIConfig struct {
	ViewMode  string `mapstructure:"view_mode" validate:"oneof=grid list"`
	Sort      string `mapstructure:"sort" validate:"oneof=default name-asc name-desc favorites"`
	Filter    string `mapstructure:"filter" validate:"oneof=all favorites-only non-favorites"`
	Locale    string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
	Portraits bool   `mapstructure:"portraits"`
}

// LogConfig configures the log output.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	File   string `mapstructure:"file"`
}

// fileConfig mirrors Config with durations as strings so the written
// YAML reads "15s" rather than nanoseconds.
type fileConfig struct {
	API struct {
		BaseURL   string `yaml:"base_url"`
		PerPage   int    `yaml:"per_page"`
		Timeout   string `yaml:"timeout"`
		RateLimit string `yaml:"rate_limit"`
	} `yaml:"api"`
	Explorer struct {
		MaxCharacters int    `yaml:"max_characters"`
		MaxAnime      int    `yaml:"max_anime"`
		Delay         string `yaml:"delay"`
		Concurrency   int    `yaml:"concurrency"`
	} `yaml:"explorer"`
	Storage struct {
		Path      string `yaml:"path"`
		Key       string `yaml:"key"`
		Ephemeral bool   `yaml:"ephemeral"`
	} `yaml:"storage"`
	UI struct {
		ViewMode  string `yaml:"view_mode"`
		Sort      string `yaml:"sort"`
		Filter    string `yaml:"filter"`
		Locale    string `yaml:"locale"`
		Portraits bool   `yaml:"portraits"`
	} `yaml:"ui"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
}

func toFile(c *Config) fileConfig {
	var f fileConfig
	f.API.BaseURL = c.API.BaseURL
	f.API.PerPage = c.API.PerPage
	f.API.Timeout = c.API.Timeout.String()
	f.API.RateLimit = c.API.RateLimit.String()
	f.Explorer.MaxCharacters = c.Explorer.MaxCharacters
	f.Explorer.MaxAnime = c.Explorer.MaxAnime
	f.Explorer.Delay = c.Explorer.Delay.String()
	f.Explorer.Concurrency = c.Explorer.Concurrency
	f.Storage.Path = c.Storage.Path
	f.Storage.Key = c.Storage.Key
	f.Storage.Ephemeral = c.Storage.Ephemeral
	f.UI.ViewMode = c.UI.ViewMode
	f.UI.Sort = c.UI.Sort
	f.UI.Filter = c.UI.Filter
	f.UI.Locale = c.UI.Locale
	f.UI.Portraits = c.UI.Portraits
	f.Log.Level = c.Log.Level
	f.Log.Format = c.Log.Format
	f.Log.File = c.Log.File
	return f
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kyara"), nil
}

// EnsureConfigDir creates dir (or the default config directory when dir is
// empty) and returns it.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		d, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDataDir returns where the favorites database lives by default:
// $XDG_DATA_HOME/kyara, else ~/.local/share/kyara.
func GetDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "kyara"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "kyara"), nil
}
