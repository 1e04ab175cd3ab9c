package cache

// Cache is the read-through capability the services use for single-entity
// and collection lookups. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(keys ...string)
}

// Noop discards everything. Used in tests and when CACHE_ENABLED=false.
type Noop struct{}

func (Noop) Get(string) (interface{}, bool) { return nil, false }

func (Noop) Set(string, interface{}) {}

func (Noop) Delete(...string) {}
