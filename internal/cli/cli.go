// Package cli implements the venn command-line interface.
//
// Commands:
//   - layout: solve a diagram and write its layout document (JSON)
//   - render: solve and render to SVG, PNG, PDF or JSON in one step
//   - visualize: render a layout document produced by layout
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//
// Sizes are given with --sizes (a 3 or 7 element tuple), repeated --subset
// key=size pairs, or --from-files with one element per line. Results are
// cached under ~/.cache/venn unless --no-cache is set.
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venn/pkg/cache"
	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "venn"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner over the cache selected by cfg.
func (c *CLI) newRunner(ctx context.Context, cfg config.Cache, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Prefix)
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = cfg.TTL
	return r, nil
}

// newCache picks Redis when a URL is configured and the file cache
// otherwise.
func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	fc, err := cache.NewFileCache(cacheDir(cfg))
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheDir returns the configured file cache directory or the XDG default.
func cacheDir(cfg config.Cache) string {
	if cfg.Dir != "" {
		return cfg.Dir
	}
	return cache.DefaultDir()
}
