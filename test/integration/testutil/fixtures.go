package testutil

import (
	"testing"
	"time"

	"pgstay/pkg/auth"
	httputil "pgstay/pkg/http"

	"github.com/google/uuid"
)

// NewUser returns a fresh identity so tests never share saved entries.
func NewUser() auth.Identity {
	id := uuid.NewString()
	return auth.Identity{
		UserID: id,
		Email:  "guest-" + id[:8] + "@example.com",
		Name:   "Integration Guest",
	}
}

// Token mints a bearer token for id signed with the service secret.
func (e *TestEnv) Token(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, err := auth.NewVerifier(e.JWTSecret).Issue(id, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// StayDates returns check-in and check-out dates starting daysAhead from
// today and lasting nights.
func StayDates(daysAhead, nights int) (string, string) {
	checkIn := time.Now().AddDate(0, 0, daysAhead)
	return httputil.FormatDate(checkIn), httputil.FormatDate(checkIn.AddDate(0, 0, nights))
}

type Reservation struct {
	ListingID string `json:"listing_id"`
	RoomID    string `json:"room_id,omitempty"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    int    `json:"guests,omitempty"`
}

// ValidReservation books listing 1 for three nights starting in a week.
func ValidReservation() Reservation {
	in, out := StayDates(7, 3)
	return Reservation{ListingID: "1", CheckIn: in, CheckOut: out, Guests: 1}
}
