package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"smart-fuel-crm/internal/logger"
)

// QueryFunc loads the value from the store on a cache miss.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// KeyFunc builds a cache key from call parameters.
type KeyFunc func(params ...any) string

// CachedQuery implements cache-aside with a fixed TTL. Values may be up to one
// TTL stale; Invalidate drops them early.
type CachedQuery[T any] struct {
	cache   ICache
	keyFunc KeyFunc
	ttl     time.Duration
	name    string
}

func NewCachedQuery[T any](c ICache, name string, keyFunc KeyFunc, ttl time.Duration) *CachedQuery[T] {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedQuery[T]{cache: c, keyFunc: keyFunc, ttl: ttl, name: name}
}

func (cq *CachedQuery[T]) Get(ctx context.Context, query QueryFunc[T], params ...any) (T, error) {
	var zero T
	key := cq.keyFunc(params...)

	if cq.cache != nil {
		data, err := cq.cache.Get(ctx, key).Result()
		switch {
		case err == nil && data != "":
			var result T
			if err := sonic.UnmarshalString(data, &result); err == nil {
				logger.Debugw(cq.name+" cache hit", "key", key)
				return result, nil
			}
			logger.Warnw(cq.name+" failed to unmarshal cached data", "key", key, "error", err)
		case err != nil && !errors.Is(err, ErrCacheMiss):
			logger.Warnw(cq.name+" cache get error", "key", key, "error", err)
		}
	}

	result, err := query(ctx)
	if err != nil {
		return zero, fmt.Errorf("%s query: %w", cq.name, err)
	}

	if cq.cache != nil {
		data, err := sonic.MarshalString(result)
		if err != nil {
			logger.Warnw(cq.name+" failed to marshal result", "key", key, "error", err)
			return result, nil
		}
		if err := cq.cache.Set(ctx, key, data, cq.ttl).Err(); err != nil {
			logger.Warnw(cq.name+" failed to cache result", "key", key, "error", err)
		}
	}
	return result, nil
}

func (cq *CachedQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	if cq.cache == nil {
		return nil
	}
	key := cq.keyFunc(params...)
	if err := cq.cache.Del(ctx, key).Err(); err != nil {
		logger.Warnw(cq.name+" failed to invalidate", "key", key, "error", err)
		return err
	}
	return nil
}
