package service

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"astromatch/internal/domain"
)

// ResultCache memoiza listas rankeadas por fingerprint de query. Es
// memoización pura: una ausencia nunca cambia la corrección, solo la
// latencia, así que los errores del backend se tratan como misses.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (domain.RankedResultList, bool, error)
	Put(ctx context.Context, fingerprint string, list domain.RankedResultList, ttl time.Duration) error
}

type memoryResultCache struct {
	mu    sync.Mutex
	items map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	list      domain.RankedResultList
	expiresAt time.Time
}

// NewMemoryResultCache crea el cache en memoria usado en tests y como
// fallback cuando Redis no está disponible.
func NewMemoryResultCache() ResultCache {
	return &memoryResultCache{items: make(map[string]memoryCacheEntry)}
}

func (c *memoryResultCache) Get(_ context.Context, fingerprint string) (domain.RankedResultList, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[fingerprint]
	if !ok {
		return domain.RankedResultList{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, fingerprint)
		return domain.RankedResultList{}, false, nil
	}
	return entry.list, true, nil
}

func (c *memoryResultCache) Put(_ context.Context, fingerprint string, list domain.RankedResultList, ttl time.Duration) error {
	if fingerprint == "" || ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[fingerprint] = memoryCacheEntry{list: list, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

type redisResultCache struct {
	client *redis.Client
	prefix string
}

// NewRedisResultCache crea el cache respaldado en Redis.
func NewRedisResultCache(client *redis.Client) ResultCache {
	if client == nil {
		return nil
	}
	return &redisResultCache{
		client: client,
		prefix: "match:result:",
	}
}

func (c *redisResultCache) Get(ctx context.Context, fingerprint string) (domain.RankedResultList, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	payload, err := c.client.Get(ctx, c.prefix+fingerprint).Bytes()
	if err == redis.Nil {
		return domain.RankedResultList{}, false, nil
	}
	if err != nil {
		return domain.RankedResultList{}, false, err
	}
	var list domain.RankedResultList
	if err := json.Unmarshal(payload, &list); err != nil {
		return domain.RankedResultList{}, false, err
	}
	return list, true, nil
}

func (c *redisResultCache) Put(ctx context.Context, fingerprint string, list domain.RankedResultList, ttl time.Duration) error {
	if fingerprint == "" || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+fingerprint, payload, ttl).Err()
}
