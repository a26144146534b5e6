package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/internal/api"
	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	redisPrefix     = "kintree:"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisURL   string
		corsOrigin string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz         liveness probe
  GET  /v1/strategies   strategies, formats and the active config
  POST /v1/layout       family tree in, layout JSON out
  POST /v1/render       family tree in, one rendered artifact out

With --redis, layouts and artifacts are cached in Redis so several
instances can share them. Otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, corsOrigin, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "allowed CORS origin (default: *)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.MarkFlagsMutuallyExclusive("redis", "no-cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, corsOrigin string, noCache bool) error {
	engine, err := c.newEngine()
	if err != nil {
		return err
	}

	var store cache.Cache
	if redisURL != "" {
		store, err = cache.NewRedisCache(ctx, redisURL, redisPrefix)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "prefix", redisPrefix)
	} else if store, err = newCache(noCache); err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	runner := pipeline.NewRunner(store, newKeyer(), engine, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(runner, c.Logger, api.Options{AllowedOrigin: corsOrigin}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
