package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/internal/api"
	"github.com/matzehuels/venn/pkg/observability"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		redisURL   string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Request defaults for layout, labels and style come from --config. Results are
cached in Redis when --redis-url (or cache.redis_url) is set and in the local
file cache otherwise.`,
		Example: `  venn serve --addr :8080
  venn serve --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sf := styleFlags{config: configPath}
			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if redisURL != "" {
				cfg.Cache.RedisURL = redisURL
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg.Cache, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHTTPHooks(c.Logger))

			backend := "file " + cacheDir(cfg.Cache)
			switch {
			case noCache || cfg.Cache.Disabled:
				backend = "disabled"
			case cfg.Cache.RedisURL != "":
				backend = "redis"
			}
			printInfo("Serving the HTTP API")
			printKeyValue("address", cfg.Server.Addr)
			printKeyValue("cache", backend)

			return api.New(runner, c.Logger, cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr or :8080)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
