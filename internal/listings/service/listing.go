package service

import (
	"context"
	"errors"
	"net/url"

	"pgstay/internal/listings/catalog"
	listingserrors "pgstay/internal/listings/errors"
	"pgstay/internal/listings/filter"
	"pgstay/internal/listings/repository"
	"pgstay/internal/listings/validator"
	reservationserrors "pgstay/internal/reservations/errors"
	"pgstay/internal/reservations/pricing"
	"pgstay/pkg/auth"
	"pgstay/pkg/config"
	apperrors "pgstay/pkg/errors"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/locale"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
	"pgstay/pkg/sanitizer"
)

type ListingService interface {
	Search(ctx context.Context, identity *auth.Identity, query url.Values) (*SearchResult, error)
	GetByID(ctx context.Context, id string) (*ListingDetails, error)
	Quote(ctx context.Context, id string, req QuoteRequest) (*QuoteResult, error)
	SuggestLocations(ctx context.Context, query string, limit int) []string
	LastFilters(ctx context.Context, identity *auth.Identity) (*filter.Criteria, error)
}

type SearchResult struct {
	Criteria filter.Criteria  `json:"criteria"`
	Listings []*model.Listing `json:"listings"`
	Count    int              `json:"count"`
}

type AmenityView struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

type ListingDetails struct {
	*model.Listing
	AmenityLabels []AmenityView           `json:"amenity_labels"`
	StartingRent  int                     `json:"starting_rent"`
	Currency      string                  `json:"currency"`
	Contact       *sanitizer.ContactLinks `json:"contact,omitempty"`
}

type QuoteRequest struct {
	CheckIn  string
	CheckOut string
	RoomID   string
}

type QuoteResult struct {
	ListingID string `json:"listing_id"`
	RoomID    string `json:"room_id,omitempty"`
	Rent      int    `json:"rent"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	pricing.Breakdown
}

type listingService struct {
	catalog   *catalog.Catalog
	filters   repository.FiltersCache
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(
	catalog *catalog.Catalog,
	filters repository.FiltersCache,
	validator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		catalog:   catalog,
		filters:   filters,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *listingService) Search(ctx context.Context, identity *auth.Identity, query url.Values) (*SearchResult, error) {
	criteria, err := filter.FromQuery(query, s.cfg.DefaultMaxRent)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if err := s.validator.ValidateCriteria(&criteria); err != nil {
		return nil, validationError("Invalid search filters", err)
	}

	listings := s.catalog.Filter(criteria)

	if identity != nil {
		if err := s.filters.Save(ctx, identity.UserID, criteria); err != nil {
			s.cfg.Log.Warn("Failed to remember search filters", "user_id", identity.UserID, "error", err)
		}
	}

	return &SearchResult{
		Criteria: criteria,
		Listings: listings,
		Count:    len(listings),
	}, nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*ListingDetails, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	listing, ok := s.catalog.FindByID(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Listing", id)
	}

	details := &ListingDetails{
		Listing:       listing,
		AmenityLabels: make([]AmenityView, 0, len(listing.Amenities)),
		StartingRent:  listing.StartingRent(),
	}
	for _, tag := range listing.Amenities {
		details.AmenityLabels = append(details.AmenityLabels, AmenityView{Tag: tag, Label: model.AmenityLabel(tag)})
	}

	phone := listing.OwnerWhatsApp
	if phone == "" {
		phone = listing.OwnerPhone
	}
	details.Currency = locale.Countries[locale.DefaultRegion].Currency
	if country := locale.InferCountryFromPhone(phone); country != nil {
		details.Currency = country.Currency
	}
	if links, ok := sanitizer.BuildContactLinks(phone, locale.DetectRegion(s.cfg.TimeZone), listing.Name); ok {
		details.Contact = &links
	} else {
		s.cfg.Log.Debug("Listing has no usable owner phone", "listing_id", id)
	}

	return details, nil
}

func (s *listingService) Quote(ctx context.Context, id string, req QuoteRequest) (*QuoteResult, error) {
	listing, ok := s.catalog.FindByID(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Listing", id)
	}

	rent, ok := listing.RentFor(req.RoomID)
	if !ok {
		return nil, apperrors.NotFoundWithID("Room", req.RoomID)
	}

	loc := s.cfg.Location()
	checkIn, err := httputil.ParseDate(req.CheckIn, loc)
	if err != nil {
		return nil, err
	}
	checkOut, err := httputil.ParseDate(req.CheckOut, loc)
	if err != nil {
		return nil, err
	}
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, apperrors.Validation(notify.DescSelectDates, nil).
			WithNotification(notify.Destructive(notify.TitleSelectDates, notify.DescSelectDates))
	}

	breakdown, err := pricing.Quote(rent, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrInvalidRange) {
			return nil, apperrors.Validation(notify.DescInvalidDates, nil).
				WithNotification(notify.Destructive(notify.TitleInvalidDates, notify.DescInvalidDates))
		}
		return nil, apperrors.Internal("Failed to price stay", err)
	}

	return &QuoteResult{
		ListingID: listing.ID,
		RoomID:    req.RoomID,
		Rent:      rent,
		CheckIn:   httputil.FormatDate(checkIn),
		CheckOut:  httputil.FormatDate(checkOut),
		Breakdown: breakdown,
	}, nil
}

func (s *listingService) SuggestLocations(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggests
	}
	return suggestLocations(s.catalog.Addresses(), query, limit)
}

func (s *listingService) LastFilters(ctx context.Context, identity *auth.Identity) (*filter.Criteria, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	criteria, err := s.filters.Load(ctx, identity.UserID)
	if err != nil {
		if !errors.Is(err, listingserrors.ErrFiltersNotFound) {
			s.cfg.Log.Warn("Failed to load remembered filters", "user_id", identity.UserID, "error", err)
		}
		defaults := filter.Default(s.cfg.DefaultMaxRent)
		return &defaults, nil
	}
	return criteria, nil
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
