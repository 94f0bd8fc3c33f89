// Package submission turns a confirmed date selection into one persisted
// reservation request.
package submission

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	reservationserrors "pgstay/internal/reservations/errors"
	"pgstay/internal/reservations/pricing"
	"pgstay/pkg/auth"
	apperrors "pgstay/pkg/errors"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	DefaultGuests = 1
	MaxGuests     = 4
)

type Store interface {
	Create(ctx context.Context, reservation *model.Reservation) error
}

type Request struct {
	Identity *auth.Identity
	Listing  *model.Listing
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type Outcome struct {
	Reservation  *model.Reservation   `json:"reservation"`
	Breakdown    pricing.Breakdown    `json:"breakdown"`
	Notification *notify.Notification `json:"-"`
	Redirect     string               `json:"-"`
}

// FailedError is returned when the store rejects the reservation. Message is
// safe to show to the user.
type FailedError struct {
	Message string
	Err     error
}

func (e *FailedError) Error() string {
	return e.Message
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

type Option func(*Submitter)

func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Submitter) { s.newID = newID }
}

// WithTransitionHook is called on every state change.
func WithTransitionHook(hook func(from, to State)) Option {
	return func(s *Submitter) { s.onTransition = hook }
}

// Submitter runs at most one submission at a time. A call made while another
// is in flight fails with ErrSubmissionInProgress and has no effect.
type Submitter struct {
	store    Store
	location *time.Location
	now      func() time.Time
	newID    func() string

	inFlight atomic.Bool

	mu           sync.Mutex
	state        State
	onTransition func(from, to State)
}

func NewSubmitter(store Store, location *time.Location, opts ...Option) *Submitter {
	s := &Submitter{
		store:    store,
		location: location,
		now:      time.Now,
		newID:    uuid.NewString,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

func (s *Submitter) transition(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	hook := s.onTransition
	s.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
}

func (s *Submitter) Submit(ctx context.Context, req Request) (*Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, reservationserrors.ErrSubmissionInProgress
	}
	defer s.inFlight.Store(false)

	s.transition(StateValidating)

	breakdown, guests, err := s.validate(req)
	if err != nil {
		s.transition(StateIdle)
		return nil, err
	}

	s.transition(StateSubmitting)

	reservation := &model.Reservation{
		ID:           s.newID(),
		UserID:       req.Identity.UserID,
		PGID:         req.Listing.ID,
		PGName:       req.Listing.Name,
		PGLocation:   req.Listing.Address,
		PGPrice:      breakdown.Total,
		RoomID:       req.RoomID,
		CheckInDate:  httputil.FormatDate(req.CheckIn.In(s.location)),
		CheckOutDate: httputil.FormatDate(req.CheckOut.In(s.location)),
		Guests:       guests,
		Status:       model.ReservationPending,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Create(ctx, reservation); err != nil {
		s.transition(StateFailed)
		s.transition(StateIdle)
		return nil, &FailedError{Message: failureMessage(err), Err: err}
	}

	s.transition(StateSucceeded)
	return &Outcome{
		Reservation:  reservation,
		Breakdown:    breakdown,
		Notification: notify.Info(notify.TitleReservationSuccess, notify.DescReservationPending),
		Redirect:     notify.RedirectProfile,
	}, nil
}

func (s *Submitter) validate(req Request) (pricing.Breakdown, int, error) {
	if req.Identity == nil || req.Identity.UserID == "" {
		return pricing.Breakdown{}, 0, reservationserrors.ErrLoginRequired
	}
	if req.Listing == nil {
		return pricing.Breakdown{}, 0, reservationserrors.ErrListingNotFound
	}
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return pricing.Breakdown{}, 0, reservationserrors.ErrDatesRequired
	}
	if !req.CheckOut.After(req.CheckIn) {
		return pricing.Breakdown{}, 0, reservationserrors.ErrInvalidDates
	}
	if req.CheckIn.Before(s.today()) {
		return pricing.Breakdown{}, 0, reservationserrors.ErrCheckInPast
	}

	guests := req.Guests
	if guests == 0 {
		guests = DefaultGuests
	}
	if guests < 1 || guests > MaxGuests {
		return pricing.Breakdown{}, 0, reservationserrors.ErrInvalidGuests
	}

	rent, ok := req.Listing.RentFor(req.RoomID)
	if !ok {
		return pricing.Breakdown{}, 0, reservationserrors.ErrRoomNotFound
	}

	breakdown, err := pricing.Quote(rent, req.CheckIn, req.CheckOut)
	if err != nil {
		return pricing.Breakdown{}, 0, err
	}
	return breakdown, guests, nil
}

// today is midnight of the current calendar day in the marketplace zone.
func (s *Submitter) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

// failureMessage surfaces messages written for users and hides everything else.
func failureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.CodeInternal && appErr.Message != "" {
		return appErr.Message
	}
	return notify.TitleReservationFailed
}
