package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"weathersearch/internal/domain"
	"weathersearch/internal/eventbus"
	"weathersearch/internal/logging"
)

const (
	// CurrentVersion is the only config file layout this build reads
	CurrentVersion = 1

	DefaultBaseURL        = "https://api.openweathermap.org"
	DefaultLang           = "en"
	DefaultLimit          = 10
	MaxLimit              = 50
	DefaultTimeoutSeconds = 10
	DefaultLogFile        = "weathersearch.log"
	DefaultLogLevel       = "info"

	// EnvPrefix is prepended to every environment override,
	// e.g. WEATHERSEARCH_WEATHER_UNITS.
	EnvPrefix = "WEATHERSEARCH"
	// APIKeyEnv is accepted as a fallback for the API key
	APIKeyEnv = "OPENWEATHER_API_KEY"
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" mapstructure:"version"`
	Weather WeatherSettings `toml:"weather" mapstructure:"weather"`
	UI      UISettings      `toml:"ui" mapstructure:"ui"`
	Log     LogSettings     `toml:"log" mapstructure:"log"`
}

// WeatherSettings configures the weather lookup service
type WeatherSettings struct {
	APIKey         string `toml:"api_key" mapstructure:"api_key"`
	BaseURL        string `toml:"base_url" mapstructure:"base_url"`
	Units          string `toml:"units" mapstructure:"units"`
	Lang           string `toml:"lang" mapstructure:"lang"`
	Limit          int    `toml:"limit" mapstructure:"limit"`
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"` // 0 disables the timeout
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen bool `toml:"alt_screen" mapstructure:"alt_screen"`
	ShowHelp  bool `toml:"show_help" mapstructure:"show_help"`
}

// LogSettings controls where diagnostics go
type LogSettings struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// UnitSystem returns the configured units as a domain value
func (c *Config) UnitSystem() domain.Units {
	return domain.Units(c.Weather.Units)
}

// Timeout returns the HTTP timeout for lookups
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Weather.TimeoutSeconds) * time.Second
}

// Validate checks values that would otherwise fail later at runtime.
// A missing API key is not an error here: the lookup reports it when a
// search is issued.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("version: unsupported config version %d, expected %d", c.Version, CurrentVersion))
	}
	if !c.UnitSystem().Valid() {
		errs = append(errs, fmt.Errorf("weather.units: unsupported value %q", c.Weather.Units))
	}
	if c.Weather.Limit < 1 || c.Weather.Limit > MaxLimit {
		errs = append(errs, fmt.Errorf("weather.limit: must be between 1 and %d, got %d", MaxLimit, c.Weather.Limit))
	}
	if c.Weather.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("weather.timeout_seconds: must not be negative, got %d", c.Weather.TimeoutSeconds))
	}
	if u, err := url.Parse(c.Weather.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("weather.base_url: invalid URL %q", c.Weather.BaseURL))
	}
	if _, ok := logging.LookupLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level: unsupported value %q (use debug, info, warn or error)", c.Log.Level))
	}
	return errors.Join(errs...)
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() *Config {
	cp := *c
	if key := cp.Weather.APIKey; key != "" {
		if len(key) > 4 {
			cp.Weather.APIKey = strings.Repeat("*", len(key)-4) + key[len(key)-4:]
		} else {
			cp.Weather.APIKey = strings.Repeat("*", len(key))
		}
	}
	return &cp
}

// Marshal encodes the config as TOML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
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
	bus      eventbus.EventBus
	filePath string
	lookupEnv func(string) (string, bool)
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "weathersearch", "config.toml")
}

// NewConfigService creates a config service reading the given file, or the
// per-user default when path is empty.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath:  path,
		lookupEnv: os.LookupEnv,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields defaults plus environment overrides.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.load(cs.filePath, true)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Units: cfg.UnitSystem(),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.load(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	// The file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) load(path string, allowMissing bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) || !allowMissing {
		return nil, fmt.Errorf("config file not found: %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Weather.APIKey == "" && cs.lookupEnv != nil {
		if key, ok := cs.lookupEnv(APIKeyEnv); ok {
			cfg.Weather.APIKey = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("weather.api_key", d.Weather.APIKey)
	v.SetDefault("weather.base_url", d.Weather.BaseURL)
	v.SetDefault("weather.units", d.Weather.Units)
	v.SetDefault("weather.lang", d.Weather.Lang)
	v.SetDefault("weather.limit", d.Weather.Limit)
	v.SetDefault("weather.timeout_seconds", d.Weather.TimeoutSeconds)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Weather: WeatherSettings{
			BaseURL:        DefaultBaseURL,
			Units:          string(domain.UnitsMetric),
			Lang:           DefaultLang,
			Limit:          DefaultLimit,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		UI: UISettings{
			AltScreen: true,
			ShowHelp:  true,
		},
		Log: LogSettings{
			File:  DefaultLogFile,
			Level: DefaultLogLevel,
		},
	}
}
