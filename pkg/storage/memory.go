package storage

import (
	"context"
	"sync/atomic"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

// Memory keeps values in process memory. With a TTL, a namespace entry
// expires when it has not been written for that long, like a browser
// session ending.
type Memory struct {
	cache  *goCache.Cache
	closed atomic.Bool
}

func NewMemory(ttl time.Duration) *Memory {
	exp := goCache.NoExpiration
	if ttl > 0 {
		exp = ttl
	}
	return &Memory{
		cache: goCache.New(exp, memoryCleanupInterval),
	}
}

func memoryKey(namespace, key string) string {
	return namespace + "\x00" + key
}

func (m *Memory) GetItem(_ context.Context, namespace, key string) (string, bool, error) {
	if m.closed.Load() {
		return "", false, ErrUnavailable
	}
	v, ok := m.cache.Get(memoryKey(namespace, key))
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *Memory) SetItem(_ context.Context, namespace, key, value string) error {
	if m.closed.Load() {
		return ErrUnavailable
	}
	m.cache.Set(memoryKey(namespace, key), value, goCache.DefaultExpiration)
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, namespace, key string) error {
	if m.closed.Load() {
		return ErrUnavailable
	}
	m.cache.Delete(memoryKey(namespace, key))
	return nil
}

func (m *Memory) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.cache.Flush()
	}
	return nil
}
