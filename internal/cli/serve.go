package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/cache"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
	"github.com/matzehuels/asciigraph/pkg/server"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	addr    string
	redis   string
	noCache bool
	prefix  string
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart rendering HTTP API",
		Long: `Serve the HTTP API:

  POST /v1/render   render {"dataset": ..., "options": ...} to text
  GET  /healthz     liveness probe
  GET  /version     build information

Rendered charts are cached in Redis when --redis (or cache.redis_url) is
set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				flags.addr = c.Config.Server.Addr
			}
			if flags.redis != "" {
				c.Config.Cache.RedisURL = flags.redis
			}
			return c.runServe(cmd, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "Redis URL for the shared chart cache (redis://host:port/db)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the chart cache")
	cmd.Flags().StringVar(&flags.prefix, "key-prefix", "", "namespace prefix for cache keys shared with other deployments")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()
	status := cmd.ErrOrStderr()

	var (
		ch  cache.Cache
		err error
	)
	if c.Config.Cache.RedisURL != "" && !flags.noCache {
		spin := newSpinner(ctx, status, "Connecting to Redis...")
		spin.Start()
		ch, err = c.newCache(ctx, false)
		if err != nil {
			spin.StopWithError("Redis unavailable")
			return err
		}
		spin.StopWithSuccess("Connected to Redis")
	} else {
		ch, err = c.newCache(ctx, flags.noCache)
		if err != nil {
			return err
		}
	}

	ttl, err := c.Config.Cache.ttl()
	if err != nil {
		ch.Close()
		return err
	}

	var keyer cache.Keyer
	if flags.prefix != "" {
		keyer = cache.NewScopedKeyer(nil, flags.prefix)
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	runner.TTL = ttl
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	printInfo(status, "Serving on %s", flags.addr)
	if err := srv.ListenAndServe(ctx, flags.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess(status, "Server stopped")
	return nil
}
