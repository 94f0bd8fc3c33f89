package service

import (
	"context"
	"errors"
	"net/http"

	"pgstay/internal/listings/catalog"
	profilesrepo "pgstay/internal/profiles/repository"
	"pgstay/internal/wishlist/cache"
	wishlisterrors "pgstay/internal/wishlist/errors"
	"pgstay/internal/wishlist/repository"
	"pgstay/pkg/auth"
	"pgstay/pkg/config"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/events"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
)

const CodeWishlistFailed = "WISHLIST_FAILED"

type WishlistService interface {
	StartSession(ctx context.Context, identity *auth.Identity) (*Session, error)
	EndSession(ctx context.Context, identity *auth.Identity) error
	IsSaved(ctx context.Context, identity *auth.Identity, listingID string) (bool, error)
	Toggle(ctx context.Context, identity *auth.Identity, listingID string) (*cache.Outcome, error)
	RemoveEntry(ctx context.Context, identity *auth.Identity, entryID string) (*RemoveResult, error)
}

type Session struct {
	UserID   string   `json:"user_id"`
	SavedIDs []string `json:"saved_ids"`
}

type RemoveResult struct {
	EntryID      string               `json:"id"`
	ListingID    string               `json:"listing_id"`
	Notification *notify.Notification `json:"-"`
}

type WishlistEntryPayload struct {
	EntryID   string `json:"entry_id,omitempty"`
	ListingID string `json:"listing_id"`
}

type wishlistService struct {
	repo     repository.SavedListingRepository
	profiles profilesrepo.ProfileRepository
	registry *cache.Registry
	catalog  *catalog.Catalog
	events   events.Publisher
	cfg      *config.Config
}

func NewWishlistService(
	repo repository.SavedListingRepository,
	profiles profilesrepo.ProfileRepository,
	registry *cache.Registry,
	catalog *catalog.Catalog,
	publisher events.Publisher,
	cfg *config.Config,
) WishlistService {
	return &wishlistService{
		repo:     repo,
		profiles: profiles,
		registry: registry,
		catalog:  catalog,
		events:   publisher,
		cfg:      cfg,
	}
}

func (s *wishlistService) StartSession(ctx context.Context, identity *auth.Identity) (*Session, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	if err := s.profiles.Upsert(ctx, &model.Profile{
		UserID:   identity.UserID,
		FullName: identity.Name,
		Email:    identity.Email,
	}); err != nil {
		s.cfg.Log.Warn("Failed to record profile on sign-in",
			"user_id", identity.UserID,
			"error", err,
		)
	}

	c, err := s.registry.Open(ctx, identity)
	if err != nil {
		return nil, s.storeError(err, identity, "Failed to load saved PGs")
	}

	s.cfg.Log.Info("Wishlist session started",
		"user_id", identity.UserID,
		"saved_count", len(c.SavedIDs()),
	)
	return &Session{UserID: identity.UserID, SavedIDs: c.SavedIDs()}, nil
}

func (s *wishlistService) EndSession(_ context.Context, identity *auth.Identity) error {
	if identity == nil {
		return apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	s.registry.Close(identity.UserID)
	s.cfg.Log.Info("Wishlist session ended", "user_id", identity.UserID)
	return nil
}

func (s *wishlistService) IsSaved(ctx context.Context, identity *auth.Identity, listingID string) (bool, error) {
	if identity == nil {
		return false, nil
	}

	c, err := s.registry.Acquire(ctx, identity)
	if err != nil {
		return false, s.storeError(err, identity, "Failed to load saved PGs")
	}
	return c.IsSaved(listingID), nil
}

func (s *wishlistService) Toggle(ctx context.Context, identity *auth.Identity, listingID string) (*cache.Outcome, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToSave)
	}

	listing, ok := s.catalog.FindByID(listingID)
	if !ok {
		return nil, apperrors.NotFoundWithID("Listing", listingID)
	}

	c, err := s.registry.Acquire(ctx, identity)
	if err != nil {
		return nil, s.storeError(err, identity, notify.DescWishlistFailed)
	}

	outcome, err := c.Toggle(ctx, listing)
	if err != nil {
		switch {
		case errors.Is(err, wishlisterrors.ErrLoginRequired):
			return nil, apperrors.LoginRequired(notify.DescLoginToSave)
		case errors.Is(err, wishlisterrors.ErrToggleInProgress):
			return nil, apperrors.Conflict("A wishlist update is already in progress")
		case errors.Is(err, wishlisterrors.ErrStaleSession):
			return nil, apperrors.Conflict("Session changed, please try again")
		default:
			return nil, s.storeError(err, identity, notify.DescWishlistFailed)
		}
	}

	eventType := events.TypeWishlistEntryRemove
	payload := WishlistEntryPayload{ListingID: listing.ID}
	if outcome.Saved {
		eventType = events.TypeWishlistEntryAdded
		payload.EntryID = outcome.Entry.ID
	}
	s.events.Publish(ctx, events.Event{
		Type:    eventType,
		UserID:  identity.UserID,
		Payload: payload,
	})

	s.cfg.Log.Info("Wishlist toggled",
		"user_id", identity.UserID,
		"listing_id", listing.ID,
		"saved", outcome.Saved,
	)
	return outcome, nil
}

// RemoveEntry deletes a saved entry by its row id and keeps the owner's live
// cache in step.
func (s *wishlistService) RemoveEntry(ctx context.Context, identity *auth.Identity, entryID string) (*RemoveResult, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	entry, err := s.repo.DeleteByID(ctx, identity.UserID, entryID)
	if err != nil {
		if errors.Is(err, wishlisterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Saved entry", entryID)
		}
		return nil, s.storeError(err, identity, notify.DescWishlistFailed)
	}

	if c, ok := s.registry.Lookup(identity.UserID); ok {
		c.Forget(entry.PGID)
	}

	s.events.Publish(ctx, events.Event{
		Type:    events.TypeWishlistEntryRemove,
		UserID:  identity.UserID,
		Payload: WishlistEntryPayload{EntryID: entry.ID, ListingID: entry.PGID},
	})

	return &RemoveResult{
		EntryID:      entry.ID,
		ListingID:    entry.PGID,
		Notification: notify.Info(notify.TitleRemoved, notify.DescRemovedSavedEntry),
	}, nil
}

func (s *wishlistService) storeError(err error, identity *auth.Identity, description string) error {
	s.cfg.Log.Error("Wishlist store call failed",
		"user_id", identity.UserID,
		"error", err,
	)
	return apperrors.Wrap(err, CodeWishlistFailed, description, http.StatusBadGateway).
		WithNotification(notify.Destructive(notify.TitleWishlistFailed, description))
}
