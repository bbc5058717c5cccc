package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/internal/server"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr        string
	levels      string
	redisAddr   string
	redisPass   string
	redisDB     int
	redisPrefix string
	noCache     bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, levels: "levels"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dungeon generation over HTTP",
		Long: `Serve dungeon generation over HTTP.

Every *.toml file in --levels is loaded at startup. Layouts are cached in the
local file cache, or in Redis when --redis is set so several instances can
share results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.levels, "levels", opts.levels, "directory of level files")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address (host:port) for a shared cache")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", "", "key prefix when sharing a Redis database")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newServeRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(opts.levels, runner, c.Logger)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	if len(srv.Names()) == 0 {
		printWarning("No level files in %s", opts.levels)
	}
	return srv.ListenAndServe(ctx, opts.addr)
}

// newServeRunner picks Redis when configured, the file cache otherwise.
func (c *CLI) newServeRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redisAddr == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     opts.redisAddr,
		Password: opts.redisPass,
		DB:       opts.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	var keyer cache.Keyer
	if opts.redisPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.redisPrefix)
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}
