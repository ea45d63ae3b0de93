package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quartzite/calc/history"
)

// config is the optional CLI configuration, read from
// ~/.config/calc/config.yaml or the path given with --config.
type config struct {
	// Format is the printf verb used to render results.
	Format string `yaml:"format,omitempty"`
	// Timeout bounds each expression in a concurrent batch, e.g. "10s".
	Timeout string        `yaml:"timeout,omitempty"`
	History historyConfig `yaml:"history,omitempty"`
}

type historyConfig struct {
	// Path overrides the history database location.
	Path string `yaml:"path,omitempty"`
	// Disabled turns off evaluation logging entirely.
	Disabled bool `yaml:"disabled,omitempty"`
}

func defaultConfig() config {
	return config{Format: "%g", Timeout: "10s"}
}

// loadConfig reads the config for a command. A missing default config file
// is not an error; a missing explicit one is.
func loadConfig(cmd *cobra.Command) (config, error) {
	cfg := defaultConfig()
	explicit, _ := cmd.Flags().GetString("config")
	path := explicit
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "calc", "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = "%g"
	}
	return cfg, nil
}

func (c config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// openHistory opens the configured history store, or returns nil when
// logging is disabled.
func (c config) openHistory() (*history.Store, error) {
	if c.History.Disabled {
		return nil, nil
	}
	path := c.History.Path
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return history.Open(path)
}
