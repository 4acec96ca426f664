package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/grid"
)

// Config is the optional TOML configuration file. Command-line flags
// override config values; config values override built-in defaults.
//
// Example (~/.config/infinigrid/config.toml):
//
//	[grid]
//	columns = 3
//	capacity = 24
//	equal_size = false
//
//	[feed]
//	seed = 7
//	per_page = 6
//	source = "http://localhost:8080"
type Config struct {
	Grid GridConfig `toml:"grid"`
	Feed FeedConfig `toml:"feed"`
}

// GridConfig mirrors the tunable grid.Options fields.
type GridConfig struct {
	ColumnWidth       float64 `toml:"column_width"`
	Gutter            float64 `toml:"gutter"`
	Columns           int     `toml:"columns"`
	Capacity          int     `toml:"capacity"`
	Threshold         float64 `toml:"threshold"`
	EqualSize         bool    `toml:"equal_size"`
	ElasticOverscroll bool    `toml:"elastic_overscroll"`
	ResizeDebounceMS  int     `toml:"resize_debounce_ms"`
}

// FeedConfig configures the card source.
type FeedConfig struct {
	Seed    int64  `toml:"seed"`
	PerPage int    `toml:"per_page"`
	Source  string `toml:"source"`
}

// defaultConfig returns the built-in configuration.
func defaultConfig() Config {
	return Config{
		Grid: GridConfig{
			ColumnWidth: 100,
			Gutter:      10,
			Capacity:    24,
			Threshold:   120,
		},
		Feed: FeedConfig{
			Seed:    defaultSeed,
			PerPage: 6,
		},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; the defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.Grid.ColumnWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.column_width must be positive")
	}
	if cfg.Grid.Capacity < 0 && cfg.Grid.Capacity != -1 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.capacity must be -1 (unbounded) or >= 0")
	}
	if cfg.Feed.PerPage < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "feed.per_page must be at least 1")
	}
	if cfg.Feed.Source != "" {
		if err := errors.ValidateURL(cfg.Feed.Source); err != nil {
			return err
		}
	}
	return nil
}

// gridOptions converts the config's grid section into grid.Options.
func (cfg Config) gridOptions() grid.Options {
	opts := grid.Options{
		ColumnWidth:       cfg.Grid.ColumnWidth,
		Gutter:            cfg.Grid.Gutter,
		Columns:           cfg.Grid.Columns,
		Capacity:          cfg.Grid.Capacity,
		Threshold:         cfg.Grid.Threshold,
		EqualSize:         cfg.Grid.EqualSize,
		ElasticOverscroll: cfg.Grid.ElasticOverscroll,
	}
	if cfg.Grid.ResizeDebounceMS > 0 {
		opts.ResizeDebounce = time.Duration(cfg.Grid.ResizeDebounceMS) * time.Millisecond
	}
	return opts
}

// configPath returns the config file location using the XDG standard
// (~/.config/infinigrid/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
