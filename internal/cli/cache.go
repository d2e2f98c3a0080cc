package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the session and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			switch cfg.Cache.Kind {
			case config.CacheNone:
				printInfo("Caching is disabled")
				return nil
			case config.CacheRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
					Addr:     cfg.Cache.RedisAddr,
					Password: cfg.Cache.RedisPassword,
					DB:       cfg.Cache.RedisDB,
					Prefix:   cfg.Cache.Prefix,
				})
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Redis: %s (prefix %q)", cfg.Cache.RedisAddr, cfg.Cache.Prefix)
				return nil
			default:
				fc, err := cache.NewFileCache(cfg.Cache.Dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				if n == 0 {
					printInfo("Cache is empty")
					return nil
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Directory: %s", fc.Dir())
				return nil
			}
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			switch cfg.Cache.Kind {
			case config.CacheRedis:
				fmt.Fprintf(c.stdout, "redis://%s/%d\n", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
			case config.CacheNone:
				printKeyValue("cache", "disabled")
			default:
				fmt.Fprintln(c.stdout, cfg.Cache.Dir)
			}
			return nil
		},
	}
}
