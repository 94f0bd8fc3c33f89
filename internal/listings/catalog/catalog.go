// Package catalog is the in-memory listing catalog searches run against.
package catalog

import (
	"sync"

	"pgstay/internal/listings/filter"
	"pgstay/pkg/model"
)

type Catalog struct {
	mu       sync.RWMutex
	listings []*model.Listing
	byID     map[string]*model.Listing
}

func New(listings []*model.Listing) *Catalog {
	c := &Catalog{}
	c.Replace(listings)
	return c
}

// Replace swaps the whole snapshot. Listings are copied, and the first
// occurrence of a duplicated id wins.
func (c *Catalog) Replace(listings []*model.Listing) {
	ordered := make([]*model.Listing, 0, len(listings))
	byID := make(map[string]*model.Listing, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		if _, dup := byID[l.ID]; dup {
			continue
		}
		cp := l.Clone()
		ordered = append(ordered, cp)
		byID[cp.ID] = cp
	}

	c.mu.Lock()
	c.listings = ordered
	c.byID = byID
	c.mu.Unlock()
}

// FindByID returns a copy of the listing, or false when no listing has that id.
func (c *Catalog) FindByID(id string) (*model.Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// Filter returns the listings matching every predicate of criteria, in
// insertion order.
func (c *Catalog) Filter(criteria filter.Criteria) []*model.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*model.Listing, 0, len(c.listings))
	for _, l := range c.listings {
		if criteria.Matches(l) {
			result = append(result, l.Clone())
		}
	}
	return result
}

func (c *Catalog) All() []*model.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*model.Listing, 0, len(c.listings))
	for _, l := range c.listings {
		result = append(result, l.Clone())
	}
	return result
}

// Addresses returns every distinct listing address.
func (c *Catalog) Addresses() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(c.listings))
	result := make([]string, 0, len(c.listings))
	for _, l := range c.listings {
		if seen[l.Address] {
			continue
		}
		seen[l.Address] = true
		result = append(result, l.Address)
	}
	return result
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listings)
}
