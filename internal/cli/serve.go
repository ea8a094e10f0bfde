package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fogbanklabs/fogbank/internal/api"
	"github.com/fogbanklabs/fogbank/pkg/cache"
	"github.com/fogbanklabs/fogbank/pkg/session"
)

// serveCommand creates the serve command hosting the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the fog engine over HTTP",
		Long: `Serve starts the HTTP API: create sessions, apply paint and erase deltas,
and fetch per-viewer frames. Backends for the render cache and session
persistence are selected in the TOML config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config file)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	renderCache, err := c.buildCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer renderCache.Close()

	sessions, err := c.buildSessionStore(ctx, cfg.Sessions)
	if err != nil {
		return err
	}
	defer sessions.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(sessions, renderCache, c.Logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildCache constructs the render cache named in the config.
func (c *CLI) buildCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		c.Logger.Debug("using redis cache", "url", cfg.RedisURL)
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	case "file", "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		c.Logger.Debug("using file cache", "dir", dir)
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (use file, redis, or none)", cfg.Backend)
	}
}

// buildSessionStore constructs the session backend named in the config.
func (c *CLI) buildSessionStore(ctx context.Context, cfg SessionsConfig) (session.Store, error) {
	switch cfg.Backend {
	case "memory", "":
		return session.NewMemoryStore(), nil
	case "file":
		c.Logger.Debug("using file session store", "dir", cfg.Dir)
		return session.NewFileStore(cfg.Dir)
	case "mongo":
		c.Logger.Debug("using mongo session store", "database", cfg.MongoDatabase)
		return session.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown session backend %q (use memory, file, or mongo)", cfg.Backend)
	}
}
