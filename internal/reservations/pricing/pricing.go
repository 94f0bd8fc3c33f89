// Package pricing converts a monthly rent and a stay into a price breakdown.
//
// The nightly rate is rent/30 regardless of the month. Amounts are carried
// as exact values and rounded half away from zero only when reported.
package pricing

import (
	"math"
	"time"

	reservationserrors "pgstay/internal/reservations/errors"
)

const (
	DaysPerMonth   = 30
	ServiceFeeRate = 0.10
)

type Breakdown struct {
	Nights      int `json:"nights"`
	NightlyRate int `json:"nightly_rate"`
	Subtotal    int `json:"subtotal"`
	ServiceFee  int `json:"service_fee"`
	Total       int `json:"total"`
}

// Nights is the stay length in whole days, rounded up.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func Quote(rent int, checkIn, checkOut time.Time) (Breakdown, error) {
	if rent < 0 {
		return Breakdown{}, reservationserrors.ErrInvalidRent
	}
	if !checkOut.After(checkIn) {
		return Breakdown{}, reservationserrors.ErrInvalidRange
	}

	nights := Nights(checkIn, checkOut)
	nightly := float64(rent) / DaysPerMonth
	subtotal := float64(nights) * nightly
	fee := math.Round(subtotal * ServiceFeeRate)

	return Breakdown{
		Nights:      nights,
		NightlyRate: int(math.Round(nightly)),
		Subtotal:    int(math.Round(subtotal)),
		ServiceFee:  int(fee),
		Total:       int(math.Round(subtotal + fee)),
	}, nil
}
