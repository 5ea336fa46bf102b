package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/cache"
	"github.com/matzehuels/asciigraph/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local chart cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove cached charts and fetched inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo(out, "Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if rdir, err := remoteCacheDir(); err == nil {
				if _, err := os.Stat(rdir); err == nil {
					store, err := httputil.NewCache(rdir, 0)
					if err != nil {
						return err
					}
					n, err := store.Clear()
					if err != nil {
						return fmt.Errorf("clear remote inputs: %w", err)
					}
					count += n
				}
			}

			printSuccess(out, "Cleared %d cached entries", count)
			printDetail(out, "Directory: %s", fc.Dir())
			if c.Config.Cache.RedisURL != "" {
				printWarning(out, "Redis cache at %s is not affected", c.Config.Cache.RedisURL)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
