package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pgstay/internal/reservations/pricing"
	"pgstay/internal/reservations/service"
	"pgstay/internal/reservations/submission"
	"pgstay/internal/reservations/validator"
	"pgstay/pkg/auth"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/logger"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"

	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
)

type mockReservationService struct {
	SubmitFunc  func(ctx context.Context, identity *auth.Identity, req *validator.CreateRequest) (*submission.Outcome, error)
	HistoryFunc func(ctx context.Context, identity *auth.Identity) ([]*model.Reservation, error)
}

func (m *mockReservationService) Submit(ctx context.Context, identity *auth.Identity, req *validator.CreateRequest) (*submission.Outcome, error) {
	return m.SubmitFunc(ctx, identity, req)
}

func (m *mockReservationService) History(ctx context.Context, identity *auth.Identity) ([]*model.Reservation, error) {
	return m.HistoryFunc(ctx, identity)
}

var _ service.ReservationService = (*mockReservationService)(nil)

func serve(svc service.ReservationService, req *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewReservationHandler(svc, logger.Discard()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withUser(req *http.Request) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{UserID: "u1"}))
}

func TestCreate_Success(t *testing.T) {
	var got *validator.CreateRequest
	svc := &mockReservationService{
		SubmitFunc: func(_ context.Context, id *auth.Identity, req *validator.CreateRequest) (*submission.Outcome, error) {
			if id == nil || id.UserID != "u1" {
				t.Errorf("identity = %+v", id)
			}
			got = req
			return &submission.Outcome{
				Reservation:  &model.Reservation{ID: "r1", PGID: "1", PGPrice: 935, Status: model.ReservationPending},
				Breakdown:    pricing.Breakdown{Nights: 3, NightlyRate: 283, Subtotal: 850, ServiceFee: 85, Total: 935},
				Notification: notify.Info(notify.TitleReservationSuccess, notify.DescReservationPending),
				Redirect:     notify.RedirectProfile,
			}, nil
		},
	}

	body := `{"listing_id":"1","room_id":"1-double","check_in":"2025-01-01","check_out":"2025-01-04","guests":2}`
	rec := serve(svc, withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got.ListingID != "1" || got.RoomID != "1-double" || got.Guests != 2 {
		t.Errorf("request = %+v", got)
	}

	var resp struct {
		Data struct {
			Reservation model.Reservation `json:"reservation"`
			Breakdown   pricing.Breakdown `json:"breakdown"`
		} `json:"data"`
		Notification notify.Notification `json:"notification"`
		Redirect     string              `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Breakdown.Total != 935 || resp.Data.Reservation.ID != "r1" {
		t.Errorf("data = %+v", resp.Data)
	}
	if resp.Notification.Title != notify.TitleReservationSuccess || resp.Redirect != notify.RedirectProfile {
		t.Errorf("notification = %+v redirect = %q", resp.Notification, resp.Redirect)
	}
}

func TestCreate_RejectsMalformedBody(t *testing.T) {
	svc := &mockReservationService{
		SubmitFunc: func(context.Context, *auth.Identity, *validator.CreateRequest) (*submission.Outcome, error) {
			t.Error("Submit must not be called")
			return nil, nil
		},
	}

	rec := serve(svc, withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{"listing_id":`))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_LoginRequired(t *testing.T) {
	svc := &mockReservationService{
		SubmitFunc: func(_ context.Context, id *auth.Identity, _ *validator.CreateRequest) (*submission.Outcome, error) {
			if id != nil {
				t.Errorf("identity = %+v, want nil", id)
			}
			return nil, apperrors.LoginRequired(notify.DescLoginToReserve)
		},
	}

	rec := serve(svc, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{"listing_id":"1"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), notify.DescLoginToReserve) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestList(t *testing.T) {
	svc := &mockReservationService{
		HistoryFunc: func(context.Context, *auth.Identity) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: "r2"}, {ID: "r1"}}, nil
		},
	}

	rec := serve(svc, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)))

	var resp struct {
		Data       []model.Reservation `json:"data"`
		TotalCount int                 `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalCount != 2 || resp.Data[0].ID != "r2" {
		t.Errorf("resp = %+v", resp)
	}
}
