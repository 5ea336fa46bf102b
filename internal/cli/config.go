package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/asciigraph/pkg/errors"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// Config is the on-disk CLI configuration:
//
//	[chart]
//	width = 100
//	height = 8
//	range = "zero-max"
//	symbol = "*"
//	type = "bar"
//	colour = "auto"
//
//	[cache]
//	disabled = false
//	ttl = "24h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
// Flags given on the command line win over file values.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ChartConfig holds chart defaults.
type ChartConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Range  string `toml:"range"`
	Symbol string `toml:"symbol"`
	Type   string `toml:"type"`
	Colour string `toml:"colour"` // auto, always or never
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	TTL      string `toml:"ttl"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

const defaultAddr = ":8080"

func defaultConfig() Config {
	return Config{
		Chart: ChartConfig{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Range:  pipeline.DefaultRange,
			Symbol: pipeline.DefaultSymbol,
			Type:   pipeline.DefaultType,
			Colour: colourAuto,
		},
		Server: ServerConfig{Addr: defaultAddr},
	}
}

// loadConfig reads path over the defaults. A missing file is an error only
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return defaultConfig(), nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := parseColourMode(cfg.Chart.Colour); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := cfg.Cache.ttl(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ttl parses the configured TTL; empty means the cache default.
func (c CacheConfig) ttl() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid cache ttl %q", c.TTL)
	}
	return d, nil
}
