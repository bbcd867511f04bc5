package engine

import (
	"slices"
	"sync"
)

// Registry is the engine-wide key-value store. It lives as long as the
// engine and is cleared on destroy.
type Registry struct {
	lock   sync.RWMutex
	values map[string]any
}

func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]any),
	}
}

func (r *Registry) Get(key string) (any, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

func (r *Registry) Set(key string, value any) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values[key] = value
}

func (r *Registry) Has(key string) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	_, ok := r.values[key]
	return ok
}

func (r *Registry) Remove(key string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.values, key)
}

// Keys returns the stored keys in sorted order.
func (r *Registry) Keys() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (r *Registry) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values = make(map[string]any)
}
