package cache

import (
	"context"
	"sync"
	"time"

	"pgstay/pkg/auth"
	"pgstay/pkg/logger"
)

type registryEntry struct {
	cache    *Cache
	lastUsed time.Time
}

// Registry holds one Cache per signed-in user. Caches idle for longer than
// the ttl are cleared and dropped by a background sweep.
type Registry struct {
	store Store
	opts  []Option
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRegistry(store Store, ttl time.Duration, log *logger.Logger, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		opts:    opts,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
		stopCh:  make(chan struct{}),
	}

	go r.cleanup()

	return r
}

func (r *Registry) cleanup() {
	interval := r.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("Expired wishlist sessions", "count", n)
			}
		case <-r.stopCh:
			return
		}
	}
}

// Sweep drops caches that were not used within the ttl and returns how many
// were removed.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	var expired []*Cache
	for userID, entry := range r.entries {
		if now.Sub(entry.lastUsed) > r.ttl && !entry.cache.InFlight() {
			expired = append(expired, entry.cache)
			delete(r.entries, userID)
		}
	}
	r.mu.Unlock()

	for _, c := range expired {
		c.Clear()
	}
	return len(expired)
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Open starts a fresh session for identity, reloading its saved ids.
func (r *Registry) Open(ctx context.Context, identity *auth.Identity) (*Cache, error) {
	c := r.entry(identity.UserID)
	if err := c.Establish(ctx, identity); err != nil {
		return nil, err
	}
	return c, nil
}

// Acquire returns the live cache for identity, opening a session when the
// user has none.
func (r *Registry) Acquire(ctx context.Context, identity *auth.Identity) (*Cache, error) {
	r.mu.Lock()
	entry, ok := r.entries[identity.UserID]
	if ok {
		entry.lastUsed = r.now()
	}
	r.mu.Unlock()

	if ok && entry.cache.Identity() != nil {
		return entry.cache, nil
	}
	return r.Open(ctx, identity)
}

// Lookup returns the live cache for userID without opening one.
func (r *Registry) Lookup(userID string) (*Cache, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	return entry.cache, true
}

// Close ends the session of userID.
func (r *Registry) Close(userID string) {
	r.mu.Lock()
	entry, ok := r.entries[userID]
	delete(r.entries, userID)
	r.mu.Unlock()

	if ok {
		entry.cache.Clear()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) entry(userID string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[userID]
	if !ok {
		entry = &registryEntry{cache: New(r.store, r.opts...)}
		r.entries[userID] = entry
	}
	entry.lastUsed = r.now()
	return entry.cache
}
