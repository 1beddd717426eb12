package cache

import (
	"context"
	"time"

	mcache "github.com/aionhq/gate/cache/memory"
	rcache "github.com/aionhq/gate/cache/redis"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/util"
)

type Cache interface {
	Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, data interface{}) error
	Delete(ctx context.Context, key string) error
}

// NewCache returns a redis backed cache, or an in-process cache when no
// redis dsn is configured. The in-process cache is per instance; a
// multi-instance deployment needs redis for throttle counters to be
// shared.
func NewCache(cfg config.RedisConfiguration) (Cache, error) {
	if util.IsStringEmpty(cfg.Dsn) {
		return mcache.NewMemoryCache(), nil
	}

	ca, err := rcache.NewRedisCache(cfg.Dsn)
	if err != nil {
		return nil, err
	}

	return ca, nil
}
