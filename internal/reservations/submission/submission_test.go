package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	reservationserrors "pgstay/internal/reservations/errors"
	"pgstay/pkg/auth"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type mockStore struct {
	mu         sync.Mutex
	calls      int
	created    []*model.Reservation
	CreateFunc func(ctx context.Context, r *model.Reservation) error
}

func (m *mockStore) Create(ctx context.Context, r *model.Reservation) error {
	m.mu.Lock()
	m.calls++
	m.created = append(m.created, r)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testListing() *model.Listing {
	return &model.Listing{
		ID:      "1",
		Name:    "Sunshine Boys PG",
		Address: "Koramangala, Bangalore",
		Rent:    8500,
		Rooms:   []model.Room{{ID: "1-single", Rent: 12000}},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ist)
}

// fixedNow is 2025-01-01 09:00 IST.
func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 9, 0, 0, 0, ist)
}

func newTestSubmitter(store Store, opts ...Option) *Submitter {
	opts = append([]Option{
		WithClock(fixedNow),
		WithIDGenerator(func() string { return "res-1" }),
	}, opts...)
	return NewSubmitter(store, ist, opts...)
}

func validRequest() Request {
	return Request{
		Identity: &auth.Identity{UserID: "user-1"},
		Listing:  testListing(),
		CheckIn:  day(2025, 1, 1),
		CheckOut: day(2025, 1, 4),
	}
}

func TestSubmit_Success(t *testing.T) {
	store := &mockStore{}
	var transitions []string
	s := newTestSubmitter(store, WithTransitionHook(func(_, to State) {
		transitions = append(transitions, to.String())
	}))

	outcome, err := s.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Calls() != 1 {
		t.Fatalf("Create calls = %d, want 1", store.Calls())
	}
	r := store.created[0]
	want := model.Reservation{
		ID:           "res-1",
		UserID:       "user-1",
		PGID:         "1",
		PGName:       "Sunshine Boys PG",
		PGLocation:   "Koramangala, Bangalore",
		PGPrice:      935,
		CheckInDate:  "2025-01-01",
		CheckOutDate: "2025-01-04",
		Guests:       1,
		Status:       model.ReservationPending,
	}
	r.CreatedAt = time.Time{}
	if *r != want {
		t.Errorf("reservation = %+v\nwant %+v", *r, want)
	}

	if outcome.Redirect != notify.RedirectProfile {
		t.Errorf("Redirect = %s", outcome.Redirect)
	}
	if outcome.Notification.Title != notify.TitleReservationSuccess {
		t.Errorf("Notification = %+v", outcome.Notification)
	}
	if s.State() != StateSucceeded {
		t.Errorf("State = %s, want succeeded", s.State())
	}

	wantTransitions := []string{"validating", "submitting", "succeeded"}
	if len(transitions) != len(wantTransitions) {
		t.Fatalf("transitions = %v", transitions)
	}
	for i := range wantTransitions {
		if transitions[i] != wantTransitions[i] {
			t.Errorf("transitions = %v, want %v", transitions, wantTransitions)
			break
		}
	}
}

func TestSubmit_ValidationFailuresMakeNoStoreCall(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{name: "no user", mutate: func(r *Request) { r.Identity = nil }, wantErr: reservationserrors.ErrLoginRequired},
		{name: "no check-in", mutate: func(r *Request) { r.CheckIn = time.Time{} }, wantErr: reservationserrors.ErrDatesRequired},
		{name: "no check-out", mutate: func(r *Request) { r.CheckOut = time.Time{} }, wantErr: reservationserrors.ErrDatesRequired},
		{name: "same day", mutate: func(r *Request) { r.CheckOut = r.CheckIn }, wantErr: reservationserrors.ErrInvalidDates},
		{name: "reversed", mutate: func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, wantErr: reservationserrors.ErrInvalidDates},
		{
			name: "past check-in",
			mutate: func(r *Request) {
				r.CheckIn = day(2024, 12, 31)
			},
			wantErr: reservationserrors.ErrCheckInPast,
		},
		{name: "too many guests", mutate: func(r *Request) { r.Guests = 5 }, wantErr: reservationserrors.ErrInvalidGuests},
		{name: "unknown room", mutate: func(r *Request) { r.RoomID = "penthouse" }, wantErr: reservationserrors.ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			s := newTestSubmitter(store)
			req := validRequest()
			tt.mutate(&req)

			_, err := s.Submit(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if store.Calls() != 0 {
				t.Errorf("Create calls = %d, want 0", store.Calls())
			}
			if s.State() != StateIdle {
				t.Errorf("State = %s, want idle", s.State())
			}
		})
	}
}

func TestSubmit_OneNightStay(t *testing.T) {
	store := &mockStore{}
	s := newTestSubmitter(store)
	req := validRequest()
	req.CheckOut = req.CheckIn.AddDate(0, 0, 1)

	outcome, err := s.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Breakdown.Nights != 1 {
		t.Errorf("Nights = %d, want 1", outcome.Breakdown.Nights)
	}
}

func TestSubmit_RoomRentAndGuests(t *testing.T) {
	store := &mockStore{}
	s := newTestSubmitter(store)
	req := validRequest()
	req.RoomID = "1-single"
	req.Guests = 2

	if _, err := s.Submit(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := store.created[0]
	if r.PGPrice != 1320 || r.Guests != 2 || r.RoomID != "1-single" {
		t.Errorf("reservation = %+v", r)
	}
}

func TestSubmit_StoreFailureReturnsToIdle(t *testing.T) {
	tests := []struct {
		name        string
		storeErr    error
		wantMessage string
	}{
		{name: "plain error hidden", storeErr: errors.New("connection reset"), wantMessage: notify.TitleReservationFailed},
		{name: "internal app error hidden", storeErr: apperrors.Internal("db exploded", nil), wantMessage: notify.TitleReservationFailed},
		{name: "user facing message kept", storeErr: apperrors.Conflict("Listing is no longer available"), wantMessage: "Listing is no longer available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{CreateFunc: func(context.Context, *model.Reservation) error { return tt.storeErr }}
			var states []State
			s := newTestSubmitter(store, WithTransitionHook(func(_, to State) { states = append(states, to) }))

			_, err := s.Submit(context.Background(), validRequest())

			var failed *FailedError
			if !errors.As(err, &failed) {
				t.Fatalf("error = %v, want FailedError", err)
			}
			if failed.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", failed.Message, tt.wantMessage)
			}
			if !errors.Is(err, tt.storeErr) {
				t.Error("FailedError should wrap the store error")
			}
			if s.State() != StateIdle {
				t.Errorf("State = %s, want idle", s.State())
			}
			if len(states) < 2 || states[len(states)-2] != StateFailed {
				t.Errorf("states = %v, want failed before idle", states)
			}
		})
	}
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	fail := true
	store := &mockStore{CreateFunc: func(context.Context, *model.Reservation) error {
		if fail {
			return errors.New("unreachable")
		}
		return nil
	}}
	s := newTestSubmitter(store)

	if _, err := s.Submit(context.Background(), validRequest()); err == nil {
		t.Fatal("expected first submission to fail")
	}
	fail = false
	if _, err := s.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if store.Calls() != 2 {
		t.Errorf("Create calls = %d, want 2", store.Calls())
	}
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mockStore{CreateFunc: func(context.Context, *model.Reservation) error {
		close(entered)
		<-release
		return nil
	}}
	s := newTestSubmitter(store)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), validRequest())
		done <- err
	}()

	<-entered
	if s.State() != StateSubmitting {
		t.Errorf("State = %s, want submitting", s.State())
	}
	if _, err := s.Submit(context.Background(), validRequest()); !errors.Is(err, reservationserrors.ErrSubmissionInProgress) {
		t.Errorf("second submit error = %v, want ErrSubmissionInProgress", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if store.Calls() != 1 {
		t.Errorf("Create calls = %d, want 1", store.Calls())
	}
}

func TestState_String(t *testing.T) {
	if StateSubmitting.String() != "submitting" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
