// Package cache keeps the set of listings a signed-in user has saved, in
// step with the saved-entry store.
package cache

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	wishlisterrors "pgstay/internal/wishlist/errors"
	"pgstay/pkg/auth"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"

	"github.com/google/uuid"
)

type Store interface {
	FindIDsByUser(ctx context.Context, userID string) ([]string, error)
	Insert(ctx context.Context, entry *model.SavedListing) error
	Delete(ctx context.Context, userID, listingID string) error
}

type Outcome struct {
	ListingID    string               `json:"listing_id"`
	Saved        bool                 `json:"saved"`
	Entry        *model.SavedListing  `json:"entry,omitempty"`
	Notification *notify.Notification `json:"-"`
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Cache) { c.newID = newID }
}

// Cache is owned by one session. The local set changes only after the store
// acknowledged the write, and every Establish starts a new generation so
// results of calls begun under an older session are dropped.
type Cache struct {
	store Store
	now   func() time.Time
	newID func() string

	inFlight atomic.Bool

	mu         sync.RWMutex
	identity   *auth.Identity
	saved      map[string]struct{}
	generation uint64
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		saved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Establish replaces the local set with the saved ids of identity. A nil
// identity ends the session and leaves the set empty. When the fetch fails
// the cache is left without an identity.
func (c *Cache) Establish(ctx context.Context, identity *auth.Identity) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.identity = identity
	c.saved = make(map[string]struct{})
	c.mu.Unlock()

	if identity == nil {
		return nil
	}

	ids, err := c.store.FindIDsByUser(ctx, identity.UserID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		if err != nil {
			return err
		}
		return wishlisterrors.ErrStaleSession
	}
	if err != nil {
		// Without the saved ids the set cannot be trusted, so the session
		// stays unestablished and the next Acquire fetches again.
		c.identity = nil
		return err
	}
	for _, id := range ids {
		c.saved[id] = struct{}{}
	}
	return nil
}

func (c *Cache) Clear() {
	_ = c.Establish(context.Background(), nil)
}

func (c *Cache) Identity() *auth.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Cache) IsSaved(listingID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.saved[listingID]
	return ok
}

// SavedIDs returns the saved listing ids in ascending order.
func (c *Cache) SavedIDs() []string {
	c.mu.RLock()
	ids := make([]string, 0, len(c.saved))
	for id := range c.saved {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (c *Cache) InFlight() bool {
	return c.inFlight.Load()
}

// Toggle removes listing from the wishlist when it is saved and saves it
// otherwise. A call made while another toggle is running fails with
// ErrToggleInProgress and touches nothing.
func (c *Cache) Toggle(ctx context.Context, listing *model.Listing) (*Outcome, error) {
	c.mu.RLock()
	identity, gen := c.identity, c.generation
	_, saved := c.saved[listing.ID]
	c.mu.RUnlock()

	if identity == nil {
		return nil, wishlisterrors.ErrLoginRequired
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, wishlisterrors.ErrToggleInProgress
	}
	defer c.inFlight.Store(false)

	if saved {
		if err := c.store.Delete(ctx, identity.UserID, listing.ID); err != nil {
			return nil, err
		}
		if err := c.apply(gen, listing.ID, false); err != nil {
			return nil, err
		}
		return &Outcome{
			ListingID:    listing.ID,
			Saved:        false,
			Notification: notify.Info(notify.TitleRemovedFromWishlist, ""),
		}, nil
	}

	entry := model.NewSavedListing(identity.UserID, listing)
	entry.ID = c.newID()
	entry.CreatedAt = c.now().UTC().Truncate(time.Millisecond)
	if err := c.store.Insert(ctx, entry); err != nil {
		return nil, err
	}
	if err := c.apply(gen, listing.ID, true); err != nil {
		return nil, err
	}
	return &Outcome{
		ListingID:    listing.ID,
		Saved:        true,
		Entry:        entry,
		Notification: notify.Info(notify.TitleAddedToWishlist, ""),
	}, nil
}

// Forget drops listingID from the local set after it was deleted from the
// store by some other path.
func (c *Cache) Forget(listingID string) {
	c.mu.Lock()
	delete(c.saved, listingID)
	c.mu.Unlock()
}

func (c *Cache) apply(gen uint64, listingID string, saved bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return wishlisterrors.ErrStaleSession
	}
	if saved {
		c.saved[listingID] = struct{}{}
	} else {
		delete(c.saved, listingID)
	}
	return nil
}
