package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"pgstay/internal/listings/catalog"
	"pgstay/internal/reservations/submission"
	"pgstay/internal/reservations/validator"
	"pgstay/pkg/auth"
	"pgstay/pkg/config"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/events"
	"pgstay/pkg/logger"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
)

type mockReservationRepository struct {
	mu             sync.Mutex
	createCalls    int
	CreateFunc     func(ctx context.Context, r *model.Reservation) error
	FindByUserFunc func(ctx context.Context, userID string) ([]*model.Reservation, error)
}

func (m *mockReservationRepository) Create(ctx context.Context, r *model.Reservation) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockReservationRepository) FindByUser(ctx context.Context, userID string) ([]*model.Reservation, error) {
	return m.FindByUserFunc(ctx, userID)
}

func (m *mockReservationRepository) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func newTestService(repo *mockReservationRepository, recorder *events.Recorder) ReservationService {
	cfg := config.FromEnv()
	cfg.Log = logger.Discard()
	cfg.TimeZone = "UTC"
	now := func() time.Time { return time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC) }
	return NewReservationService(
		repo,
		catalog.New(catalog.Seed()),
		validator.NewReservationValidator(cfg.Log),
		recorder,
		cfg,
		submission.WithClock(now),
	)
}

var guest = &auth.Identity{UserID: "user-1", Email: "guest@example.com"}

func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	if !apperrors.IsAppError(err) {
		t.Fatalf("error %v is not an AppError", err)
	}
	return apperrors.AsAppError(err)
}

func TestSubmit_Success(t *testing.T) {
	repo := &mockReservationRepository{}
	recorder := &events.Recorder{}
	svc := newTestService(repo, recorder)

	outcome, err := svc.Submit(context.Background(), guest, &validator.CreateRequest{
		ListingID: "1",
		CheckIn:   "2025-01-01",
		CheckOut:  "2025-01-04",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Reservation.PGPrice != 935 {
		t.Errorf("PGPrice = %d, want 935", outcome.Reservation.PGPrice)
	}
	if outcome.Reservation.PGName != "Sunshine Boys PG" || outcome.Reservation.PGLocation != "Koramangala, Bangalore" {
		t.Errorf("snapshot = %+v", outcome.Reservation)
	}
	if outcome.Redirect != notify.RedirectProfile {
		t.Errorf("Redirect = %q", outcome.Redirect)
	}
	if types := recorder.Types(); len(types) != 1 || types[0] != events.TypeReservationCreated {
		t.Errorf("events = %v", types)
	}
}

func TestSubmit_UnauthenticatedMakesNoStoreCall(t *testing.T) {
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &events.Recorder{})

	_, err := svc.Submit(context.Background(), nil, &validator.CreateRequest{
		ListingID: "1",
		CheckIn:   "2025-01-01",
		CheckOut:  "2025-01-04",
	})

	appErr := appError(t, err)
	if appErr.StatusCode() != http.StatusUnauthorized || appErr.Redirect != notify.RedirectAuth {
		t.Errorf("error = %+v", appErr)
	}
	if appErr.Notification == nil || appErr.Notification.Description != notify.DescLoginToReserve {
		t.Errorf("notification = %+v", appErr.Notification)
	}
	if repo.CreateCalls() != 0 {
		t.Errorf("Create calls = %d, want 0", repo.CreateCalls())
	}
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        validator.CreateRequest
		storeErr   error
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "missing dates",
			req:        validator.CreateRequest{ListingID: "1"},
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  notify.TitleSelectDates,
		},
		{
			name:       "inverted dates",
			req:        validator.CreateRequest{ListingID: "1", CheckIn: "2025-01-04", CheckOut: "2025-01-01"},
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  notify.TitleInvalidDates,
		},
		{
			name:       "past check-in",
			req:        validator.CreateRequest{ListingID: "1", CheckIn: "2024-12-30", CheckOut: "2025-01-04"},
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  notify.TitleInvalidDates,
		},
		{
			name:       "unknown listing",
			req:        validator.CreateRequest{ListingID: "404", CheckIn: "2025-01-01", CheckOut: "2025-01-04"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown room",
			req:        validator.CreateRequest{ListingID: "1", RoomID: "x", CheckIn: "2025-01-01", CheckOut: "2025-01-04"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing listing id",
			req:        validator.CreateRequest{CheckIn: "2025-01-01", CheckOut: "2025-01-04"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "store failure",
			req:        validator.CreateRequest{ListingID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-04"},
			storeErr:   errors.New("connection refused"),
			wantStatus: http.StatusBadGateway,
			wantTitle:  notify.TitleReservationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReservationRepository{CreateFunc: func(context.Context, *model.Reservation) error { return tt.storeErr }}
			recorder := &events.Recorder{}
			svc := newTestService(repo, recorder)

			_, err := svc.Submit(context.Background(), guest, &tt.req)
			appErr := appError(t, err)
			if appErr.StatusCode() != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", appErr.StatusCode(), tt.wantStatus, err)
			}
			if tt.wantTitle != "" && (appErr.Notification == nil || appErr.Notification.Title != tt.wantTitle) {
				t.Errorf("notification = %+v, want title %q", appErr.Notification, tt.wantTitle)
			}
			if len(recorder.Types()) != 0 {
				t.Errorf("failed submission published %v", recorder.Types())
			}
		})
	}
}

func TestSubmit_ConcurrentSameListingRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	repo := &mockReservationRepository{CreateFunc: func(context.Context, *model.Reservation) error {
		close(entered)
		<-release
		return nil
	}}
	svc := newTestService(repo, &events.Recorder{})
	req := &validator.CreateRequest{ListingID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-04"}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), guest, req)
		done <- err
	}()
	<-entered

	_, err := svc.Submit(context.Background(), guest, req)
	if appError(t, err).StatusCode() != http.StatusConflict {
		t.Errorf("second submission error = %v, want conflict", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if repo.CreateCalls() != 1 {
		t.Errorf("Create calls = %d, want 1", repo.CreateCalls())
	}

	// The slot is free again once the first submission finished.
	repo.CreateFunc = nil
	if _, err := svc.Submit(context.Background(), guest, req); err != nil {
		t.Errorf("follow-up submission failed: %v", err)
	}
}

func TestSubmitter_KeptWhileAnotherRequestHoldsIt(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &events.Recorder{}).(*reservationService)
	key := guest.UserID + "|1"
	req := &validator.CreateRequest{ListingID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-04"}

	// A request that looked up the submitter but has not started submitting yet.
	held := svc.submitter(key)

	if _, err := svc.Submit(context.Background(), guest, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := svc.holders(key); n != 1 {
		t.Fatalf("holders = %d, want 1", n)
	}

	next := svc.submitter(key)
	if next != held {
		t.Error("a new submitter was created while the old one was still held")
	}

	svc.release(key, next)
	svc.release(key, held)
	if n := svc.holders(key); n != 0 {
		t.Errorf("holders = %d after final release, want 0", n)
	}
	if fresh := svc.submitter(key); fresh == held {
		t.Error("released submitter was reused")
	}
}

func TestHistory(t *testing.T) {
	repo := &mockReservationRepository{
		FindByUserFunc: func(_ context.Context, userID string) ([]*model.Reservation, error) {
			if userID != "user-1" {
				t.Errorf("userID = %s", userID)
			}
			return []*model.Reservation{{ID: "b"}, {ID: "a"}}, nil
		},
	}
	svc := newTestService(repo, &events.Recorder{})

	got, err := svc.History(context.Background(), guest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" {
		t.Errorf("History = %+v", got)
	}

	if _, err := svc.History(context.Background(), nil); appError(t, err).StatusCode() != http.StatusUnauthorized {
		t.Errorf("anonymous history error = %v", err)
	}
}
