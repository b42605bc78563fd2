package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/karte/internal/summary"
)

type Config struct {
	ChartRoot     string        `toml:"chart_root"`
	ChartExts     []string      `toml:"chart_ext"`
	DBPath        string        `toml:"db_path"`
	MinInputChars int           `toml:"min_input_chars"`
	MaxInputChars int           `toml:"max_input_chars"`
	LogLevel      string        `toml:"log_level"`
	Summary       SummaryConfig `toml:"summary"`
	Server        ServerConfig  `toml:"server"`
}

type SummaryConfig struct {
	Sections []string        `toml:"sections"`
	Aliases  []summary.Alias `toml:"aliases"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultPath is the config file consulted by Load.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "karte", "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file is not an error.
func LoadFile(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ChartRoot:     filepath.Join(home, "karte", "charts"),
		ChartExts:     []string{".txt"},
		DBPath:        filepath.Join(home, ".config", "karte", "karte.db"),
		MinInputChars: 100,
		MaxInputChars: 200000,
		LogLevel:      "info",
		Server:        ServerConfig{Addr: "127.0.0.1:8765"},
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ChartRoot = expandHome(cfg.ChartRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.Layout().Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	if cfg.MinInputChars < 0 || (cfg.MaxInputChars > 0 && cfg.MaxInputChars < cfg.MinInputChars) {
		return nil, fmt.Errorf("config %s: input bounds %d..%d are inconsistent", cfgPath, cfg.MinInputChars, cfg.MaxInputChars)
	}

	return cfg, nil
}

// Layout returns the summary layout; without configured sections the
// default discharge summary layout applies.
func (c *Config) Layout() summary.Layout {
	if len(c.Summary.Sections) == 0 {
		l := summary.DefaultLayout()
		if len(c.Summary.Aliases) > 0 {
			l.Aliases = c.Summary.Aliases
		}
		return l
	}
	return summary.Layout{Keys: c.Summary.Sections, Aliases: c.Summary.Aliases}
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
