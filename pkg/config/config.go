// Package config loads weekgrid's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/weekgrid/config.toml (or
// ~/.config/weekgrid/config.toml) unless --config names another path. A
// missing file is not an error: every field has a default.
//
//	[source]
//	kind = "http"
//	base_url = "https://portal.example.edu/api"
//
//	[cache]
//	kind = "redis"
//	redis_addr = "localhost:6379"
//
//	[layout]
//	grouping = "interval"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/source"
)

// Cache kinds.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
}

// SourceConfig selects where weeks come from.
type SourceConfig struct {
	Kind          string `toml:"kind"` // demo, file, http, mongo
	Dir           string `toml:"dir"`
	BaseURL       string `toml:"base_url"`
	Token         string `toml:"token"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Semester      string `toml:"semester"` // default --semester
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Kind          string `toml:"kind"` // file, redis, none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// LayoutConfig holds default layout options.
type LayoutConfig struct {
	Grouping    string  `toml:"grouping"`
	OffsetStep  float64 `toml:"offset_step"`
	OpacityStep float64 `toml:"opacity_step"`
	FullWidth   float64 `toml:"full_width"`
}

// ServerConfig configures `weekgrid serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills empty fields.
func (c *Config) SetDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = source.KindDemo
	}
	if c.Source.MongoDatabase == "" {
		c.Source.MongoDatabase = "weekgrid"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = CacheFile
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir()
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "weekgrid:"
	}
	if c.Layout.Grouping == "" {
		c.Layout.Grouping = layout.GroupingExact
	}
	if c.Layout.OffsetStep == 0 {
		c.Layout.OffsetStep = layout.DefaultOffsetStep
	}
	if c.Layout.OpacityStep == 0 {
		c.Layout.OpacityStep = layout.DefaultOpacityStep
	}
	if c.Layout.FullWidth == 0 {
		c.Layout.FullWidth = layout.DefaultFullWidth
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case source.KindDemo:
	case source.KindFile:
		if c.Source.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source.dir is required for file sources")
		}
	case source.KindHTTP:
		if err := errors.ValidateURL(c.Source.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.base_url")
		}
	case source.KindMongo:
		if c.Source.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source.mongo_uri is required for mongo sources")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown source.kind %q", c.Source.Kind)
	}

	switch c.Cache.Kind {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.kind %q", c.Cache.Kind)
	}

	if _, err := layout.GrouperByName(c.Layout.Grouping); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.grouping")
	}
	if c.Layout.OffsetStep < 0 || c.Layout.OpacityStep < 0 || c.Layout.FullWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout values must not be negative")
	}
	return nil
}

// SourceOptions converts the [source] section for source.Open.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Kind:          c.Source.Kind,
		Dir:           c.Source.Dir,
		BaseURL:       c.Source.BaseURL,
		Token:         c.Source.Token,
		MongoURI:      c.Source.MongoURI,
		MongoDatabase: c.Source.MongoDatabase,
	}
}

// Load reads path, applies defaults and validates. An empty path uses
// DefaultPath; a missing default file yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if !os.IsNotExist(err) || explicit {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
		}
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/weekgrid/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "weekgrid", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".weekgrid", "config.toml")
	}
	return filepath.Join(home, ".config", "weekgrid", "config.toml")
}

// DefaultCacheDir returns ~/.cache/weekgrid.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "weekgrid")
	}
	return filepath.Join(os.TempDir(), "weekgrid-cache")
}
