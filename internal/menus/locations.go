package menus

import (
	"strings"
	"sync"
)

// LocationRegistry holds the layout slots a site declares for menus.
type LocationRegistry struct {
	mu          sync.RWMutex
	keys        []string
	description map[string]string
}

// NewLocationRegistry returns an empty registry.
func NewLocationRegistry() *LocationRegistry {
	return &LocationRegistry{description: map[string]string{}}
}

// Register declares a location key. Registering the same key twice updates
// its description.
func (r *LocationRegistry) Register(key, description string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.description[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.description[key] = strings.TrimSpace(description)
}

// IsRegistered reports whether key was declared.
func (r *LocationRegistry) IsRegistered(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.description[key]
	return ok
}

// Keys returns the registered keys in registration order.
func (r *LocationRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Description returns the label given to key.
func (r *LocationRegistry) Description(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.description[key]
}
