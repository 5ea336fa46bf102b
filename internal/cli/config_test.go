package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[chart]
width = 100
range = "zero-max"
colour = "always"

[cache]
ttl = "36h"
redis_url = "redis://cache:6379/2"

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Chart.Width != 100 || cfg.Chart.Range != "zero-max" || cfg.Chart.Colour != "always" {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Chart.Height != defaultConfig().Chart.Height || cfg.Chart.Symbol != "#" {
		t.Errorf("unset keys should keep defaults: %+v", cfg.Chart)
	}
	if ttl, _ := cfg.Cache.ttl(); ttl != 36*time.Hour {
		t.Errorf("ttl = %v", ttl)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379/2" || cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("implicit missing config: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config: code = %s", errors.GetCode(err))
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[chart\nwidth = 1"},
		{"unknown key", "[chart]\nwidht = 90\n"},
		{"colour", "[chart]\ncolour = \"rainbow\"\n"},
		{"ttl", "[cache]\nttl = \"forever\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			if _, err := loadConfig(path, true); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT (err %v)", errors.GetCode(err), err)
			}
		})
	}
}

func TestCacheConfigTTLDefault(t *testing.T) {
	ttl, err := CacheConfig{}.ttl()
	if err != nil || ttl != 0 {
		t.Errorf("empty ttl = %v, %v; want 0, nil", ttl, err)
	}
}
