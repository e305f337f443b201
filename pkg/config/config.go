// Package config loads venn settings from TOML.
//
// A file may set any subset of the options; everything else keeps its
// documented default:
//
//	[layout]
//	scale = 1.0
//	max_iterations = 4000
//
//	[labels]
//	grid = 64
//
//	[style]
//	subset_font_size = 14
//	set_labels = ["Cats", "Dogs", "Birds"]
//
//	[style.overrides.111]
//	color = "#000000"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
//	[server]
//	addr = ":8080"
//
// Unknown keys are rejected so that typos surface instead of being ignored.
package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/venn/pkg/cache"
	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/label"
	"github.com/matzehuels/venn/pkg/core/solve"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/render/style"
)

// DefaultAddr is the listen address of "venn serve".
const DefaultAddr = ":8080"

// Config is the full set of file-configurable options.
type Config struct {
	Layout solve.Config `toml:"layout"`
	Labels label.Config `toml:"labels"`
	Style  style.Config `toml:"style"`
	Cache  Cache        `toml:"cache"`
	Server Server       `toml:"server"`
}

// Cache selects and tunes the result cache.
type Cache struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`
	// Dir is the file cache directory; empty means cache.DefaultDir().
	Dir string `toml:"dir"`
	// RedisURL selects the Redis backend when set.
	RedisURL string `toml:"redis_url"`
	// Prefix namespaces keys in a shared Redis database.
	Prefix string `toml:"prefix"`
	// TTL is the entry lifetime.
	TTL time.Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout: solve.DefaultConfig(),
		Labels: label.DefaultConfig(),
		Style:  style.Default(),
		Cache:  Cache{TTL: cache.TTLLayout},
		Server: Server{Addr: DefaultAddr, MaxBodyBytes: 1 << 20},
	}
}

// Diagram returns the layout part of the configuration.
func (c Config) Diagram() diagram.Config {
	return diagram.Config{Layout: c.Layout, Labels: c.Labels}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Diagram().Validate(); err != nil {
		return err
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// Load parses TOML data over the defaults and validates the result.
func Load(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses the file at path. An empty path returns the
// defaults.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Load(string(data))
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}
