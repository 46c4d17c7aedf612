package cache_di

import (
	"context"

	"github.com/lintang-b-s/settlement-search/pkg/cache"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"

	"go.uber.org/zap"
)

// New connects the query cache. it returns nil when the cache is disabled or redis is unreachable,
// search then runs uncached.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*cache.QueryCache, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cache.Config{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
		TTL:      cfg.Cache.TTL,
	})
	if err != nil {
		log.Warn("redis unavailable, search caching disabled", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		return nil, func() {}, nil
	}
	log.Info("search cache enabled", zap.String("addr", cfg.Cache.Addr), zap.Duration("ttl", cfg.Cache.TTL))

	cleanup := func() {
		_ = rdb.Close()
	}
	return cache.New(rdb, cfg.Cache.TTL, log), cleanup, nil
}
