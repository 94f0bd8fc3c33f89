package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func validListing() *Listing {
	return &Listing{
		ID:          "1",
		Name:        "Sunshine Boys PG",
		Address:     "Koramangala, Bangalore",
		Latitude:    12.9352,
		Longitude:   77.6245,
		Rating:      4.5,
		ReviewCount: 128,
		Rent:        8500,
		Deposit:     17000,
		Gender:      GenderBoys,
		Food:        FoodVeg,
		Images:      []string{"https://images.unsplash.com/photo-1"},
		Amenities:   []string{"wifi", "ac"},
		OwnerPhone:  "+919876543210",
		Rooms: []Room{
			{ID: "single", Name: "Single", Sleeps: 1, BathroomType: BathroomPrivate, Rent: 12000},
			{ID: "double", Name: "Double", Sleeps: 2, BathroomType: BathroomShared, Rent: 8000},
		},
	}
}

func TestListing_Validation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name        string
		mutate      func(*Listing)
		expectValid bool
	}{
		{name: "valid listing", mutate: func(*Listing) {}, expectValid: true},
		{name: "missing name", mutate: func(l *Listing) { l.Name = "" }},
		{name: "unknown gender", mutate: func(l *Listing) { l.Gender = "mixed" }},
		{name: "unknown food", mutate: func(l *Listing) { l.Food = "vegan" }},
		{name: "rating above five", mutate: func(l *Listing) { l.Rating = 5.1 }},
		{name: "negative rent", mutate: func(l *Listing) { l.Rent = -1 }},
		{name: "bad image url", mutate: func(l *Listing) { l.Images = []string{"not a url"} }},
		{name: "room with bad bathroom", mutate: func(l *Listing) { l.Rooms[0].BathroomType = "ensuite" }},
		{name: "no rooms is fine", mutate: func(l *Listing) { l.Rooms = nil }, expectValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(l)
			err := v.Struct(l)
			if tt.expectValid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.expectValid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestListing_StartingRent(t *testing.T) {
	l := validListing()
	if got := l.StartingRent(); got != 8000 {
		t.Errorf("StartingRent = %d, want 8000", got)
	}

	l.Rooms = nil
	if got := l.StartingRent(); got != 8500 {
		t.Errorf("StartingRent without rooms = %d, want 8500", got)
	}
}

func TestListing_Room(t *testing.T) {
	l := validListing()
	r, ok := l.Room("double")
	if !ok || r.Rent != 8000 {
		t.Fatalf("Room(double) = %+v, %v", r, ok)
	}
	if _, ok := l.Room("penthouse"); ok {
		t.Error("unknown room should not be found")
	}
}

func TestListing_CloneIsIndependent(t *testing.T) {
	l := validListing()
	c := l.Clone()
	c.Amenities[0] = "pool"
	c.Rooms[0].Rent = 1

	if l.Amenities[0] != "wifi" {
		t.Error("clone shares amenities with original")
	}
	if l.Rooms[0].Rent != 12000 {
		t.Error("clone shares rooms with original")
	}
}

func TestListing_PrimaryImage(t *testing.T) {
	l := validListing()
	if l.PrimaryImage() == "" {
		t.Error("expected first image")
	}
	l.Images = nil
	if l.PrimaryImage() != "" {
		t.Error("expected empty image for listing without images")
	}
}

func TestAmenityLabel(t *testing.T) {
	tests := map[string]string{
		"wifi":         "WiFi",
		"power_backup": "Power Backup",
		"AC":           "AC",
		"rooftop":      "rooftop",
	}
	for tag, want := range tests {
		if got := AmenityLabel(tag); got != want {
			t.Errorf("AmenityLabel(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestNewSavedListing_Snapshot(t *testing.T) {
	l := validListing()
	s := NewSavedListing("user-1", l)

	if s.UserID != "user-1" || s.PGID != "1" {
		t.Errorf("unexpected ids: %+v", s)
	}
	if s.PGName != l.Name || s.PGLocation != l.Address || s.PGPrice != l.Rent {
		t.Errorf("snapshot does not match listing: %+v", s)
	}
	if s.PGImage != l.Images[0] {
		t.Errorf("PGImage = %q", s.PGImage)
	}
}

func TestReservation_Validation(t *testing.T) {
	v := validator.New()
	r := &Reservation{
		UserID:       "user-1",
		PGID:         "1",
		PGName:       "Sunshine Boys PG",
		PGPrice:      935,
		CheckInDate:  "2026-11-01",
		CheckOutDate: "2026-11-04",
		Guests:       1,
		Status:       ReservationPending,
	}
	if err := v.Struct(r); err != nil {
		t.Fatalf("expected valid reservation, got %v", err)
	}

	r.Guests = 5
	if err := v.Struct(r); err == nil {
		t.Error("expected error for 5 guests")
	}

	r.Guests = 2
	r.CheckInDate = "01/11/2026"
	if err := v.Struct(r); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestListing_RentFor(t *testing.T) {
	l := validListing()

	tests := []struct {
		roomID   string
		wantRent int
		wantOK   bool
	}{
		{roomID: "", wantRent: 8500, wantOK: true},
		{roomID: "single", wantRent: 12000, wantOK: true},
		{roomID: "suite", wantRent: 0, wantOK: false},
	}
	for _, tt := range tests {
		rent, ok := l.RentFor(tt.roomID)
		if rent != tt.wantRent || ok != tt.wantOK {
			t.Errorf("RentFor(%q) = %d, %v, want %d, %v", tt.roomID, rent, ok, tt.wantRent, tt.wantOK)
		}
	}
}
