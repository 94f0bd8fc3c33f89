package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	wishlisterrors "pgstay/internal/wishlist/errors"
	"pgstay/pkg/auth"
	"pgstay/pkg/logger"
	"pgstay/pkg/model"
)

type mockStore struct {
	mu      sync.Mutex
	calls   int
	inserts []*model.SavedListing
	deletes []string

	FindIDsByUserFunc func(ctx context.Context, userID string) ([]string, error)
	InsertFunc        func(ctx context.Context, entry *model.SavedListing) error
	DeleteFunc        func(ctx context.Context, userID, listingID string) error
}

func (m *mockStore) FindIDsByUser(ctx context.Context, userID string) ([]string, error) {
	m.count()
	if m.FindIDsByUserFunc != nil {
		return m.FindIDsByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) Insert(ctx context.Context, entry *model.SavedListing) error {
	m.count()
	m.mu.Lock()
	m.inserts = append(m.inserts, entry)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, entry)
	}
	return nil
}

func (m *mockStore) Delete(ctx context.Context, userID, listingID string) error {
	m.count()
	m.mu.Lock()
	m.deletes = append(m.deletes, userID+"/"+listingID)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *mockStore) count() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var (
	alice = &auth.Identity{UserID: "alice"}
	bob   = &auth.Identity{UserID: "bob"}
)

func testListing(id string) *model.Listing {
	return &model.Listing{
		ID:      id,
		Name:    "Sunshine Boys PG",
		Address: "Koramangala, Bangalore",
		Rent:    8500,
		Images:  []string{"https://img/1.jpg", "https://img/2.jpg"},
	}
}

func TestEstablish_LoadsSavedIDs(t *testing.T) {
	store := &mockStore{
		FindIDsByUserFunc: func(_ context.Context, userID string) ([]string, error) {
			if userID != "alice" {
				t.Errorf("userID = %s", userID)
			}
			return []string{"3", "1"}, nil
		},
	}
	c := New(store)

	if err := c.Establish(context.Background(), alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsSaved("1") || !c.IsSaved("3") || c.IsSaved("2") {
		t.Errorf("saved ids = %v", c.SavedIDs())
	}
	if got := c.SavedIDs(); len(got) != 2 || got[0] != "1" {
		t.Errorf("SavedIDs = %v", got)
	}

	if err := c.Establish(context.Background(), nil); err != nil {
		t.Fatalf("clearing: %v", err)
	}
	if len(c.SavedIDs()) != 0 || c.Identity() != nil {
		t.Errorf("cleared cache still holds %v", c.SavedIDs())
	}
}

func TestEstablish_StoreFailureLeavesEmptySet(t *testing.T) {
	c := New(&mockStore{
		FindIDsByUserFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("store unreachable")
		},
	})

	if err := c.Establish(context.Background(), alice); err == nil {
		t.Fatal("expected error")
	}
	if len(c.SavedIDs()) != 0 {
		t.Errorf("SavedIDs = %v", c.SavedIDs())
	}
	if c.Identity() != nil {
		t.Error("failed establish left the session looking live")
	}
	if _, err := c.Toggle(context.Background(), testListing("1")); !errors.Is(err, wishlisterrors.ErrLoginRequired) {
		t.Errorf("toggle after failed establish error = %v", err)
	}
}

func TestRegistry_AcquireRetriesAfterFailedFetch(t *testing.T) {
	var mu sync.Mutex
	unreachable := true
	store := &mockStore{
		FindIDsByUserFunc: func(context.Context, string) ([]string, error) {
			mu.Lock()
			defer mu.Unlock()
			if unreachable {
				return nil, errors.New("store unreachable")
			}
			return []string{"1"}, nil
		},
	}
	r := NewRegistry(store, time.Hour, logger.Discard())
	defer r.Stop()

	if _, err := r.Acquire(context.Background(), alice); err == nil {
		t.Fatal("expected error")
	}

	mu.Lock()
	unreachable = false
	mu.Unlock()

	c, err := r.Acquire(context.Background(), alice)
	if err != nil {
		t.Fatalf("Acquire after recovery: %v", err)
	}
	if !c.IsSaved("1") || c.Identity() == nil {
		t.Fatalf("after recovery: saved ids %v, identity %v", c.SavedIDs(), c.Identity())
	}

	outcome, err := c.Toggle(context.Background(), testListing("1"))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if outcome.Saved || len(store.deletes) != 1 || len(store.inserts) != 0 {
		t.Errorf("toggle on saved listing: saved=%v inserts=%d deletes=%d", outcome.Saved, len(store.inserts), len(store.deletes))
	}
}

func TestEstablish_DiscardsStaleFetch(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mockStore{
		FindIDsByUserFunc: func(_ context.Context, userID string) ([]string, error) {
			if userID == "alice" {
				close(entered)
				<-release
				return []string{"1"}, nil
			}
			return []string{"2"}, nil
		},
	}
	c := New(store)

	done := make(chan error, 1)
	go func() { done <- c.Establish(context.Background(), alice) }()
	<-entered

	if err := c.Establish(context.Background(), bob); err != nil {
		t.Fatalf("establishing bob: %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, wishlisterrors.ErrStaleSession) {
		t.Errorf("stale establish error = %v", err)
	}
	if c.IsSaved("1") || !c.IsSaved("2") {
		t.Errorf("saved ids = %v, want only bob's", c.SavedIDs())
	}
}

func TestToggle_NoIdentityMakesNoStoreCall(t *testing.T) {
	store := &mockStore{}
	c := New(store)

	_, err := c.Toggle(context.Background(), testListing("1"))

	if !errors.Is(err, wishlisterrors.ErrLoginRequired) {
		t.Fatalf("error = %v", err)
	}
	if store.Calls() != 0 {
		t.Errorf("store calls = %d, want 0", store.Calls())
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store := &mockStore{}
	c := New(store, WithClock(func() time.Time { return now }), WithIDGenerator(func() string { return "entry-1" }))
	if err := c.Establish(context.Background(), alice); err != nil {
		t.Fatal(err)
	}

	added, err := c.Toggle(context.Background(), testListing("1"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added.Saved || !c.IsSaved("1") {
		t.Fatalf("after add: outcome %+v, saved %v", added, c.IsSaved("1"))
	}
	entry := store.inserts[0]
	if entry.ID != "entry-1" || entry.UserID != "alice" || entry.PGName != "Sunshine Boys PG" ||
		entry.PGLocation != "Koramangala, Bangalore" || entry.PGPrice != 8500 ||
		entry.PGImage != "https://img/1.jpg" || !entry.CreatedAt.Equal(now) {
		t.Errorf("inserted entry = %+v", entry)
	}
	if added.Notification == nil || added.Notification.Title != "Added to wishlist" {
		t.Errorf("notification = %+v", added.Notification)
	}

	removed, err := c.Toggle(context.Background(), testListing("1"))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.Saved || c.IsSaved("1") {
		t.Errorf("after remove: outcome %+v, saved %v", removed, c.IsSaved("1"))
	}
	if len(store.deletes) != 1 || store.deletes[0] != "alice/1" {
		t.Errorf("deletes = %v", store.deletes)
	}
	if removed.Notification == nil || removed.Notification.Title != "Removed from wishlist" {
		t.Errorf("notification = %+v", removed.Notification)
	}
}

func TestToggle_StoreFailureLeavesSetUnchanged(t *testing.T) {
	tests := []struct {
		name      string
		preSaved  []string
		wantSaved bool
	}{
		{name: "failed insert", wantSaved: false},
		{name: "failed delete", preSaved: []string{"1"}, wantSaved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storeErr := errors.New("constraint violation")
			store := &mockStore{
				FindIDsByUserFunc: func(context.Context, string) ([]string, error) { return tt.preSaved, nil },
				InsertFunc:        func(context.Context, *model.SavedListing) error { return storeErr },
				DeleteFunc:        func(context.Context, string, string) error { return storeErr },
			}
			c := New(store)
			if err := c.Establish(context.Background(), alice); err != nil {
				t.Fatal(err)
			}

			_, err := c.Toggle(context.Background(), testListing("1"))

			if !errors.Is(err, storeErr) {
				t.Fatalf("error = %v", err)
			}
			if c.IsSaved("1") != tt.wantSaved {
				t.Errorf("IsSaved = %v, want %v", c.IsSaved("1"), tt.wantSaved)
			}
			if c.InFlight() {
				t.Error("in-flight flag not released")
			}
		})
	}
}

func TestToggle_SecondCallWhileInFlightIsIgnored(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mockStore{
		InsertFunc: func(context.Context, *model.SavedListing) error {
			close(entered)
			<-release
			return nil
		},
	}
	c := New(store)
	if err := c.Establish(context.Background(), alice); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Toggle(context.Background(), testListing("1"))
		done <- err
	}()
	<-entered

	if _, err := c.Toggle(context.Background(), testListing("2")); !errors.Is(err, wishlisterrors.ErrToggleInProgress) {
		t.Errorf("second toggle error = %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !c.IsSaved("1") || c.IsSaved("2") {
		t.Errorf("saved ids = %v", c.SavedIDs())
	}
}

func TestToggle_DiscardsResultAfterSessionChange(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mockStore{
		InsertFunc: func(context.Context, *model.SavedListing) error {
			close(entered)
			<-release
			return nil
		},
	}
	c := New(store)
	if err := c.Establish(context.Background(), alice); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Toggle(context.Background(), testListing("1"))
		done <- err
	}()
	<-entered

	c.Clear()
	close(release)

	if err := <-done; !errors.Is(err, wishlisterrors.ErrStaleSession) {
		t.Errorf("error = %v", err)
	}
	if c.IsSaved("1") {
		t.Error("stale toggle leaked into the cleared session")
	}
}

func TestForget(t *testing.T) {
	c := New(&mockStore{
		FindIDsByUserFunc: func(context.Context, string) ([]string, error) { return []string{"1", "2"}, nil },
	})
	if err := c.Establish(context.Background(), alice); err != nil {
		t.Fatal(err)
	}

	c.Forget("1")

	if c.IsSaved("1") || !c.IsSaved("2") {
		t.Errorf("saved ids = %v", c.SavedIDs())
	}
}

func TestRegistry(t *testing.T) {
	store := &mockStore{
		FindIDsByUserFunc: func(_ context.Context, userID string) ([]string, error) {
			return []string{userID + "-pg"}, nil
		},
	}
	r := NewRegistry(store, time.Hour, logger.Discard())
	defer r.Stop()

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	c, err := r.Acquire(context.Background(), alice)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !c.IsSaved("alice-pg") {
		t.Errorf("saved ids = %v", c.SavedIDs())
	}

	again, err := r.Acquire(context.Background(), alice)
	if err != nil || again != c {
		t.Errorf("Acquire should reuse the live cache")
	}
	if store.Calls() != 1 {
		t.Errorf("store calls = %d, want 1", store.Calls())
	}

	if _, err := r.Open(context.Background(), bob); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}

	r.Close("bob")
	if _, ok := r.Lookup("bob"); ok {
		t.Error("bob's session survived Close")
	}

	now = now.Add(2 * time.Hour)
	if n := r.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if c.Identity() != nil || len(c.SavedIDs()) != 0 {
		t.Error("expired cache was not cleared")
	}
}
