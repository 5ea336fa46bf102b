package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/buildinfo"
	"github.com/matzehuels/asciigraph/pkg/cache"
	"github.com/matzehuels/asciigraph/pkg/httputil"
	"github.com/matzehuels/asciigraph/pkg/observability"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "asciigraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded from the config file before any command runs.
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "asciigraph draws bar and scatter charts as plain text",
		Long: `asciigraph renders labeled numeric data as bar or scatter charts made of
ordinary characters, paginating wide datasets so every line fits the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/asciigraph/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the logger to the command context
// and, at debug level, registers logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		if p, err := configPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		cfg, err := loadConfig(path, explicit)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	if c.Logger.GetLevel() <= log.DebugLevel {
		h := &logHooks{logger: c.Logger}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	ttl, err := c.Config.Cache.ttl()
	if err != nil {
		ch.Close()
		return nil, err
	}
	r.TTL = ttl
	r.Fetcher = httputil.NewFetcher(c.remoteCache(noCache))
	return r, nil
}

// remoteTTL bounds how long fetched http(s) inputs are reused.
const remoteTTL = time.Hour

// remoteCache returns the store for fetched inputs, or nil when caching is
// off or the directory is unusable.
func (c *CLI) remoteCache(noCache bool) *httputil.Cache {
	if noCache || c.Config.Cache.Disabled {
		return nil
	}
	dir, err := remoteCacheDir()
	if err != nil {
		return nil
	}
	store, err := httputil.NewCache(dir, remoteTTL)
	if err != nil {
		c.Logger.Warn("remote input cache disabled", "error", err)
		return nil
	}
	return store
}

// newCache picks the cache backend: none when disabled, Redis when a URL is
// configured, otherwise files under the user cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/asciigraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// remoteCacheDir holds fetched http(s) inputs.
func remoteCacheDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "remote"), nil
}

// configPath returns the default config file location
// (~/.config/asciigraph/config.toml).
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
