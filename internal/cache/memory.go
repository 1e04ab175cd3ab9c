package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Memory struct {
	store *gocache.Cache
}

func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, cleanupInterval)}
}

func (m *Memory) Get(key string) (interface{}, bool) {
	return m.store.Get(key)
}

func (m *Memory) Set(key string, value interface{}) {
	m.store.SetDefault(key, value)
}

func (m *Memory) Delete(keys ...string) {
	for _, key := range keys {
		m.store.Delete(key)
	}
}
