package validator

import (
	"errors"
	"testing"

	"pgstay/pkg/logger"
)

func TestValidate(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	tests := []struct {
		name      string
		req       CreateRequest
		wantField string
	}{
		{name: "valid", req: CreateRequest{ListingID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-04"}},
		{name: "dates may be empty", req: CreateRequest{ListingID: "1"}},
		{name: "missing listing", req: CreateRequest{CheckIn: "2025-01-01"}, wantField: "ListingID"},
		{name: "bad date format", req: CreateRequest{ListingID: "1", CheckIn: "1/1/2025"}, wantField: "CheckIn"},
		{name: "too many guests", req: CreateRequest{ListingID: "1", Guests: 5}, wantField: "Guests"},
		{name: "negative guests", req: CreateRequest{ListingID: "1", Guests: -1}, wantField: "Guests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error = %v, want ValidationErrors", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("details = %v, want field %s", verrs.Details(), tt.wantField)
			}
		})
	}
}
