package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. KYARA_API_BASE_URL.
const EnvPrefix = "KYARA"

// Default returns the built-in configuration for configDir and dataDir.
func Default(configDir, dataDir string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.jikan.moe/v4",
			PerPage:   20,
			Timeout:   15 * time.Second,
			RateLimit: 333 * time.Millisecond,
		},
		Explorer: ExplorerConfig{
			MaxCharacters: 5,
			MaxAnime:      12,
			Delay:         333 * time.Millisecond,
		},
		Storage: StorageConfig{
			Path: filepath.Join(dataDir, "kyara.db"),
			Key:  "jikan_favorites",
		},
		UI: UIConfig{
			ViewMode:  "grid",
			Sort:      "default",
			Filter:    "all",
			Locale:    "und",
			Portraits: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(configDir, "kyara.log"),
		},
	}
}

// SetDefaults registers every key of Default with v so that environment
// overrides apply even when no config file exists.
func SetDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.per_page", def.API.PerPage)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("api.rate_limit", def.API.RateLimit)
	v.SetDefault("explorer.max_characters", def.Explorer.MaxCharacters)
	v.SetDefault("explorer.max_anime", def.Explorer.MaxAnime)
	v.SetDefault("explorer.delay", def.Explorer.Delay)
	v.SetDefault("explorer.concurrency", def.Explorer.Concurrency)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.key", def.Storage.Key)
	v.SetDefault("storage.ephemeral", def.Storage.Ephemeral)
	v.SetDefault("ui.view_mode", def.UI.ViewMode)
	v.SetDefault("ui.sort", def.UI.Sort)
	v.SetDefault("ui.filter", def.UI.Filter)
	v.SetDefault("ui.locale", def.UI.Locale)
	v.SetDefault("ui.portraits", def.UI.Portraits)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)
}

// Load reads <configDir>/config.yaml through v, layering it over the
// defaults and under KYARA_* environment variables. A missing file is not
// an error.
func Load(v *viper.Viper, configDir, dataDir string) (*Config, error) {
	SetDefaults(v, Default(configDir, dataDir))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := filepath.Join(configDir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("mapstructure")
		})
	})
	return validate
}

// FieldError is one invalid setting.
type FieldError struct {
	Key     string
	Message string
}

// ValidationError lists every invalid setting found by Validate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Key, f.Message))
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Key:     configKey(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// configKey turns "Config.api.per_page" into "api.per_page".
func configKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "bcp47_language_tag":
		return "must be a BCP 47 language tag"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
