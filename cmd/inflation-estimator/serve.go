package main

import (
	"context"
	"time"

	"github.com/iwvelando/inflation-estimator/internal/cache"
	"github.com/iwvelando/inflation-estimator/internal/logging"
	"github.com/iwvelando/inflation-estimator/internal/server"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web calculator and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger := a.logger
			if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
				logger, err = logging.New(cfg.Logging, a.logLevel)
				if err != nil {
					return err
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			store, closeStore := newCache(cmd.Context(), logger, cfg.Cache)
			defer closeStore()

			a.logger = logger
			service := a.newService(store)

			return server.New(cfg, logger, service, version).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")

	return cmd
}

// newCache returns the Redis cache when one is configured and reachable,
// and an in-memory cache otherwise.
func newCache(ctx context.Context, logger *zap.Logger, cfg server.CacheConfig) (cache.Cache, func()) {
	if cfg.RedisAddress == "" {
		return cache.NewMemoryCacheWithSize(cfg.TTL, cfg.MaxEntries), func() {}
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddress, cfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache",
			zap.String("op", "main.newCache"),
			zap.String("address", cfg.RedisAddress),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemoryCacheWithSize(cfg.TTL, cfg.MaxEntries), func() {}
	}

	logger.Info("using redis cache",
		zap.String("op", "main.newCache"),
		zap.String("address", cfg.RedisAddress),
	)
	return redisCache, func() { _ = redisCache.Close() }
}
