// Package cache is a small cache-aside layer over redis or process memory.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get for an absent or expired key.
var ErrCacheMiss = redis.Nil

// ICache is the subset of the redis client used here; *redis.Client satisfies it.
type ICache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// DefaultMemoryBytes sizes the in-process cache when no size is configured.
const DefaultMemoryBytes = 16 * 1024 * 1024

// Memory is an in-process ICache on fastcache, used when no redis address is
// configured. Expired keys are dropped on read.
type Memory struct {
	cache *fastcache.Cache
	ttls  sync.Map // key -> expiry time.Time
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemory(maxBytes int) *Memory {
	if maxBytes <= 0 {
		maxBytes = DefaultMemoryBytes
	}
	return &Memory{cache: fastcache.New(maxBytes), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.RLock()
	exp, hasTTL := m.ttls.Load(key)
	value, ok := m.cache.HasGet(nil, []byte(key))
	m.mu.RUnlock()

	if hasTTL && !m.now().Before(exp.(time.Time)) {
		m.Del(context.Background(), key)
		return redis.NewStringResult("", ErrCacheMiss)
	}
	if !ok {
		return redis.NewStringResult("", ErrCacheMiss)
	}
	return redis.NewStringResult(string(value), nil)
}

func (m *Memory) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		b, err := sonic.Marshal(v)
		if err != nil {
			return redis.NewStatusResult("", err)
		}
		data = b
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set([]byte(key), data)
	if expiration > 0 {
		m.ttls.Store(key, m.now().Add(expiration))
	} else {
		m.ttls.Delete(key)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *Memory) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if m.cache.Has([]byte(k)) {
			m.cache.Del([]byte(k))
			n++
		}
		m.ttls.Delete(k)
	}
	return redis.NewIntResult(n, nil)
}
