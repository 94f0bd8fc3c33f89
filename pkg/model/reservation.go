package model

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation is a checkout row. PGPrice holds the computed total and the
// dates are calendar dates formatted yyyy-MM-dd.
type Reservation struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id" validate:"required"`
	PGID         string    `json:"pg_id" bson:"pg_id" validate:"required"`
	PGName       string    `json:"pg_name" bson:"pg_name" validate:"required"`
	PGLocation   string    `json:"pg_location" bson:"pg_location"`
	PGPrice      int       `json:"pg_price" bson:"pg_price" validate:"min=0"`
	RoomID       string    `json:"room_id,omitempty" bson:"room_id,omitempty"`
	CheckInDate  string    `json:"check_in_date" bson:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string    `json:"check_out_date" bson:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests       int       `json:"guests" bson:"guests" validate:"min=1,max=4"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
