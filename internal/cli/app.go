package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"weathersearch/internal/config"
	"weathersearch/internal/eventbus"
	"weathersearch/internal/logging"
	"weathersearch/internal/weather"
)

// app bundles the services a command needs
type app struct {
	cfg       *config.Config
	configSvc config.ConfigService
	logger    *slog.Logger
	bus       eventbus.EventBus
	client    *weather.Client

	logFile io.Closer
}

// newApp loads the config, applies flag overrides and wires logging, the
// event bus and the weather client.
func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	logOut := cmd.ErrOrStderr()
	if cfg.Log.File != "-" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.logFile = f
		logOut = f
	}
	a.logger = logging.New(logOut, cfg.Log.Level)

	a.bus = eventbus.New(a.logger)
	a.subscribeLogging()
	a.configSvc = config.NewConfigServiceWithBus(configPath(opts), a.bus)
	a.bus.Publish(eventbus.ConfigLoadedEvent{Path: a.configSvc.Path(), Units: cfg.UnitSystem()})

	a.client, err = weather.NewClient(weather.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Units:   cfg.UnitSystem(),
		Lang:    cfg.Weather.Lang,
		Limit:   cfg.Weather.Limit,
		Timeout: cfg.Timeout(),
	}, weather.WithLogger(a.logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Close stops the bus and closes the log file
func (a *app) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// subscribeLogging records bus traffic in the log
func (a *app) subscribeLogging() {
	a.bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			a.logger.Info("config loaded", slog.String("path", event.Path), slog.String("units", string(event.Units)))
		}
	})
	a.bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			a.logger.Info("config saved", slog.String("path", event.Path))
		}
	})
	a.bus.Subscribe(eventbus.EventSearchDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchDiscardedEvent); ok {
			a.logger.Debug("search discarded",
				slog.String("query", event.Query),
				slog.Uint64("seq", event.Seq),
				slog.String("reason", event.Reason))
		}
	})
	a.bus.Subscribe(eventbus.EventSearchCleared, func(eventbus.DomainEvent) {
		a.logger.Debug("search cleared")
	})
}

func configPath(opts *options) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies flag overrides on top
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.NewConfigService(configPath(opts)).Load()
	if err != nil {
		return nil, err
	}

	if opts.apiKey != "" {
		cfg.Weather.APIKey = opts.apiKey
	}
	if opts.units != "" {
		cfg.Weather.Units = opts.units
	}
	if opts.baseURL != "" {
		cfg.Weather.BaseURL = opts.baseURL
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// hasConfigFile reports whether path exists
func hasConfigFile(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
