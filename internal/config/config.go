package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
}

// BackendConfig holds the base URLs of the three routes. Empty per-route
// URLs fall back to BaseURL.
type BackendConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	ChatURL       string `mapstructure:"chat_url" validate:"omitempty,url"`
	WeatherURL    string `mapstructure:"weather_url" validate:"omitempty,url"`
	SimilarityURL string `mapstructure:"similarity_url" validate:"omitempty,url"`
}

// HTTPConfig holds client settings.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	TimeFormat string `mapstructure:"time_format" validate:"required"`
	Timezone   string `mapstructure:"timezone"`
	StartTab   string `mapstructure:"start_tab" validate:"oneof=chat weather similarity"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	File  string `mapstructure:"file"`
}

// SessionConfig holds the session store location. An empty Dir means the
// system temp dir.
type SessionConfig struct {
	Dir string `mapstructure:"dir"`
}

// ChatBase returns the base URL for the chat route.
func (b BackendConfig) ChatBase() string { return firstNonEmpty(b.ChatURL, b.BaseURL) }

// WeatherBase returns the base URL for the weather route.
func (b BackendConfig) WeatherBase() string { return firstNonEmpty(b.WeatherURL, b.BaseURL) }

// SimilarityBase returns the base URL for the similarity route.
func (b BackendConfig) SimilarityBase() string { return firstNonEmpty(b.SimilarityURL, b.BaseURL) }

// Location resolves the configured time zone, falling back to time.Local.
func (u UIConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(u.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath is the config file used when neither the --config flag nor
// LABDESK_CONFIG is set.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "labdesk", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://127.0.0.1:5000")
	v.SetDefault("backend.chat_url", "")
	v.SetDefault("backend.weather_url", "")
	v.SetDefault("backend.similarity_url", "")
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("ui.time_format", "15:04")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.start_tab", "chat")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "labdesk", "labdesk.log"))
	v.SetDefault("session.dir", "")
}

// Load reads configuration from file and env. Env var overrides use prefix
// LABDESK_. An empty path means $LABDESK_CONFIG, then DefaultPath. A missing
// file is not an error. Overrides, when non-nil, are applied last (flags).
func Load(path string, overrides map[string]any) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("LABDESK_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LABDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to path as TOML, creating the directory
// if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.chat_url", cfg.Backend.ChatURL)
	v.Set("backend.weather_url", cfg.Backend.WeatherURL)
	v.Set("backend.similarity_url", cfg.Backend.SimilarityURL)
	v.Set("http.timeout", cfg.HTTP.Timeout.String())
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.start_tab", cfg.UI.StartTab)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("session.dir", cfg.Session.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, s := range vals {
		if s = strings.TrimSpace(s); s != "" {
			return strings.TrimRight(s, "/")
		}
	}
	return ""
}
