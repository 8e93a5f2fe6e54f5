package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/api"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const (
	defaultAddr            = ":8080"
	defaultMongoDB         = appName
	defaultMongoCollection = "cache"
	shutdownTimeout        = 10 * time.Second
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	mongoURI    string
	mongoDB     string
	cachePrefix string
	themes      string
	noCache     bool
}

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, mongoDB: defaultMongoDB}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mind-map pipeline over HTTP",
		Long: `Serve the mind-map pipeline over HTTP.

Endpoints:
  GET  /health        liveness and build information
  POST /api/outline   markdown body → title forest (JSON)
  POST /api/layout    markdown body → layout (JSON)
  POST /api/render    markdown body → drawing (?format=svg|png|pdf|json)

Results are cached in Redis (--redis) or MongoDB (--mongo) when given,
otherwise in the local cache directory. --cache-prefix scopes all keys so
several deployments can share one store. --themes names a directory of
TOML themes that requests select with ?theme=NAME.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the shared cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the shared cache")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "prefix for every cache key")
	cmd.Flags().StringVar(&opts.themes, "themes", "", "directory of TOML themes selectable with ?theme=NAME")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo", "no-cache")

	return cmd
}

// runServe builds the cache and runner and serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.cachePrefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	observability.SetLogHooks(observability.NewLogHooks(c.Logger))
	defer observability.Reset()

	httpServer := &http.Server{
		Addr:         opts.addr,
		Handler:      api.NewServer(runner, c.Logger, api.WithThemeDir(opts.themes)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("starting server", "addr", opts.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve %s: %w", opts.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverCache returns the cache backend selected by the serve flags.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.redisURL != "":
		c.Logger.Info("using redis cache")
		return cache.NewRedisCache(ctx, opts.redisURL, appName+":")
	case opts.mongoURI != "":
		c.Logger.Info("using mongo cache", "db", opts.mongoDB)
		return cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB, defaultMongoCollection)
	default:
		return newCache(opts.noCache)
	}
}
