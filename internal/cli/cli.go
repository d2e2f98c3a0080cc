// Package cli implements the weekgrid command-line interface.
//
// Commands:
//   - grid, agenda: compute one week and write it as text, JSON, SVG or CSV
//   - browse: interactive week browser
//   - serve: read-only HTTP API
//   - weeks, periods: list what a source offers
//   - seed: copy file-source weeks into MongoDB
//   - cache: inspect or clear the cache
//
// Every command reads the config file (--config) and accepts --source and
// --no-cache overrides. --verbose enables debug logging and registers the
// logging observability hooks.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/buildinfo"
	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/config"
	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completion scripts.
const appName = "weekgrid"

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

	// Global flags.
	configPath string
	sourceKind string
	sourceDir  string
	noCache    bool

	cfg    *config.Config
	stdout io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Weekgrid lays out weekly class timetables",
		Long:         `Weekgrid computes a period-by-day grid and a day-grouped agenda for one week of class sessions, with overlapping classes stacked into readable layers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/weekgrid/config.toml)")
	flags.StringVar(&c.sourceKind, "source", "", "data source: demo, file, http, mongo (overrides config)")
	flags.StringVar(&c.sourceDir, "dir", "", "directory for the file source (overrides config)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the cache")

	root.AddCommand(c.gridCommand())
	root.AddCommand(c.agendaCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.weeksCommand())
	root.AddCommand(c.periodsCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Config
// =============================================================================

// config loads the config file once and applies the global flag overrides.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.sourceKind != "" {
		cfg.Source.Kind = c.sourceKind
	}
	if c.sourceDir != "" {
		cfg.Source.Dir = c.sourceDir
	}
	if c.noCache {
		cfg.Cache.Kind = config.CacheNone
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.cfg = &cfg
	return c.cfg, nil
}

// layoutDefaults returns pipeline options carrying the configured layout.
func layoutDefaults(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Grouping:    cfg.Layout.Grouping,
		OffsetStep:  cfg.Layout.OffsetStep,
		OpacityStep: cfg.Layout.OpacityStep,
		FullWidth:   cfg.Layout.FullWidth,
	}
}

// =============================================================================
// Environment
// =============================================================================

// env holds the opened source and cache for one command run.
type env struct {
	cfg    *config.Config
	source source.Source
	cache  cache.Cache
	keyer  cache.Keyer
	closer func(context.Context) error
}

// openEnv opens the configured source behind the cache. refresh skips
// cache reads but still writes fresh results.
func (c *CLI) openEnv(ctx context.Context, refresh bool) (*env, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	raw, closer, err := source.Open(ctx, cfg.SourceOptions())
	if err != nil {
		return nil, err
	}
	store := c.newCache(ctx, cfg)
	keyer := cache.NewScopedKeyer(nil, sourceScope(cfg))

	src := source.NewCached(source.Instrument(raw), store,
		source.WithKeyer(keyer),
		source.WithRefresh(refresh),
		source.WithLogger(c.Logger))

	c.Logger.Debug("opened source", "kind", raw.Name(), "cache", cfg.Cache.Kind)
	return &env{cfg: cfg, source: src, cache: store, keyer: keyer, closer: closer}, nil
}

// runner builds a pipeline runner over the environment.
func (e *env) runner(logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(e.source, e.cache, e.keyer, logger)
}

// Close releases the source connection and the cache.
func (e *env) Close(ctx context.Context) {
	_ = e.closer(ctx)
	_ = e.cache.Close()
}

// newCache builds the configured cache backend. Backends that cannot be
// opened degrade to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	switch cfg.Cache.Kind {
	case config.CacheNone:
		return cache.NewNullCache()
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.Prefix,
		})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", cfg.Cache.RedisAddr, "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("cache directory unusable, caching disabled", "dir", cfg.Cache.Dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// sourceScope prefixes cache keys with the source location so two file
// directories or two servers never share entries.
func sourceScope(cfg *config.Config) string {
	var loc string
	switch cfg.Source.Kind {
	case source.KindFile:
		loc = cfg.Source.Dir
	case source.KindHTTP:
		loc = cfg.Source.BaseURL
	case source.KindMongo:
		loc = cfg.Source.MongoURI + "/" + cfg.Source.MongoDatabase
	}
	if loc == "" {
		return cfg.Source.Kind + ":"
	}
	return cfg.Source.Kind + ":" + cache.Hash([]byte(loc))[:12] + ":"
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string. Empty means the
// view's default format.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
