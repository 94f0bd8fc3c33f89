package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"pgstay/internal/listings/catalog"
	reservationserrors "pgstay/internal/reservations/errors"
	"pgstay/internal/reservations/repository"
	"pgstay/internal/reservations/submission"
	"pgstay/internal/reservations/validator"
	"pgstay/pkg/auth"
	"pgstay/pkg/config"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/events"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
)

const CodeReservationFailed = "RESERVATION_FAILED"

type ReservationService interface {
	Submit(ctx context.Context, identity *auth.Identity, req *validator.CreateRequest) (*submission.Outcome, error)
	History(ctx context.Context, identity *auth.Identity) ([]*model.Reservation, error)
}

type ReservationCreatedPayload struct {
	ReservationID string `json:"reservation_id"`
	ListingID     string `json:"listing_id"`
	RoomID        string `json:"room_id,omitempty"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Guests        int    `json:"guests"`
	Total         int    `json:"total"`
}

type reservationService struct {
	repo      repository.ReservationRepository
	catalog   *catalog.Catalog
	validator *validator.ReservationValidator
	events    events.Publisher
	cfg       *config.Config
	opts      []submission.Option

	mu         sync.Mutex
	submitters map[string]*submitterRef
}

type submitterRef struct {
	sub     *submission.Submitter
	holders int
}

func NewReservationService(
	repo repository.ReservationRepository,
	catalog *catalog.Catalog,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
	opts ...submission.Option,
) ReservationService {
	return &reservationService{
		repo:       repo,
		catalog:    catalog,
		validator:  validator,
		events:     publisher,
		cfg:        cfg,
		opts:       opts,
		submitters: make(map[string]*submitterRef),
	}
}

func (s *reservationService) Submit(ctx context.Context, identity *auth.Identity, req *validator.CreateRequest) (*submission.Outcome, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToReserve)
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, validationError("Invalid reservation request", err)
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

	listing, ok := s.catalog.FindByID(req.ListingID)
	if !ok {
		return nil, apperrors.NotFoundWithID("Listing", req.ListingID)
	}

	key := identity.UserID + "|" + listing.ID
	submitter := s.submitter(key)
	defer s.release(key, submitter)

	outcome, err := submitter.Submit(ctx, submission.Request{
		Identity: identity,
		Listing:  listing,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	})
	if err != nil {
		return nil, s.translate(err, identity, listing.ID)
	}

	r := outcome.Reservation
	s.cfg.Log.Info("Reservation submitted",
		"reservation_id", r.ID,
		"user_id", r.UserID,
		"listing_id", r.PGID,
		"total", r.PGPrice,
	)
	s.events.Publish(ctx, events.Event{
		Type:       events.TypeReservationCreated,
		UserID:     r.UserID,
		OccurredAt: r.CreatedAt,
		Payload: ReservationCreatedPayload{
			ReservationID: r.ID,
			ListingID:     r.PGID,
			RoomID:        r.RoomID,
			CheckIn:       r.CheckInDate,
			CheckOut:      r.CheckOutDate,
			Guests:        r.Guests,
			Total:         r.PGPrice,
		},
	})

	return outcome, nil
}

func (s *reservationService) History(ctx context.Context, identity *auth.Identity) ([]*model.Reservation, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	reservations, err := s.repo.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// submitter returns the submitter for one user and listing, so the same user
// cannot have two submissions for a listing in flight. Every call must be
// paired with release.
func (s *reservationService) submitter(key string) *submission.Submitter {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.submitters[key]
	if !ok {
		ref = &submitterRef{sub: submission.NewSubmitter(s.repo, s.cfg.Location(), s.opts...)}
		s.submitters[key] = ref
	}
	ref.holders++
	return ref.sub
}

// release drops one hold on the submitter and forgets it once nobody holds it.
func (s *reservationService) release(key string, sub *submission.Submitter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.submitters[key]
	if !ok || ref.sub != sub {
		return
	}
	ref.holders--
	if ref.holders <= 0 {
		delete(s.submitters, key)
	}
}

// holders reports how many requests hold the submitter for key.
func (s *reservationService) holders(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref, ok := s.submitters[key]; ok {
		return ref.holders
	}
	return 0
}

func (s *reservationService) translate(err error, identity *auth.Identity, listingID string) error {
	var failed *submission.FailedError
	switch {
	case errors.Is(err, reservationserrors.ErrLoginRequired):
		return apperrors.LoginRequired(notify.DescLoginToReserve)
	case errors.Is(err, reservationserrors.ErrDatesRequired):
		return apperrors.Validation(notify.DescSelectDates, nil).
			WithNotification(notify.Destructive(notify.TitleSelectDates, notify.DescSelectDates))
	case errors.Is(err, reservationserrors.ErrInvalidDates):
		return apperrors.Validation(notify.DescInvalidDates, nil).
			WithNotification(notify.Destructive(notify.TitleInvalidDates, notify.DescInvalidDates))
	case errors.Is(err, reservationserrors.ErrCheckInPast):
		return apperrors.Validation(notify.DescPastCheckIn, nil).
			WithNotification(notify.Destructive(notify.TitleInvalidDates, notify.DescPastCheckIn))
	case errors.Is(err, reservationserrors.ErrInvalidGuests):
		return apperrors.Validation(err.Error(), map[string]any{"Guests": err.Error()})
	case errors.Is(err, reservationserrors.ErrRoomNotFound):
		return apperrors.NotFound("Room")
	case errors.Is(err, reservationserrors.ErrSubmissionInProgress):
		return apperrors.Conflict("A reservation for this PG is already being submitted")
	case errors.As(err, &failed):
		s.cfg.Log.Error("Reservation store call failed",
			"user_id", identity.UserID,
			"listing_id", listingID,
			"error", failed.Err,
		)
		return apperrors.Wrap(failed.Err, CodeReservationFailed, failed.Message, http.StatusBadGateway).
			WithNotification(notify.Destructive(notify.TitleReservationFailed, failed.Message))
	default:
		return apperrors.Internal("Failed to submit reservation", err)
	}
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
