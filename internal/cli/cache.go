package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/cache"
	"github.com/matzehuels/venn/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return err
			}
			if cfg.Cache.RedisURL != "" {
				return clearRedis(cmd, cfg.Cache)
			}
			return clearFiles(cfg.Cache)
		},
	}
}

func clearFiles(cfg config.Cache) error {
	fc, err := cache.NewFileCache(cacheDir(cfg))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("Cache is empty")
	} else {
		printSuccess("Cleared %d cached entries", n)
	}
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func clearRedis(cmd *cobra.Command, cfg config.Cache) error {
	rc, err := cache.NewRedisCache(cmd.Context(), cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rc.Close()

	total := 0
	for _, kind := range []string{"layout", "artifact"} {
		n, err := rc.Clear(cmd.Context(), cfg.Prefix+kind+":*")
		if err != nil {
			return err
		}
		total += n
	}
	printSuccess("Cleared %d cached entries", total)
	printDetail("Redis: %s", cfg.RedisURL)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheDir(cfg.Cache))
			return nil
		},
	}
}
