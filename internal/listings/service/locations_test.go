package service

import (
	"context"
	"testing"
)

var addresses = []string{
	"Koramangala, Bangalore",
	"HSR Layout, Bangalore",
	"Indiranagar, Bangalore",
	"BTM Layout, Bangalore",
	"Marathahalli, Bangalore",
	"Whitefield, Bangalore",
}

func TestSuggestLocations(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantNone  bool
	}{
		{name: "prefix", query: "kora", wantFirst: "Koramangala"},
		{name: "typo", query: "koramangla", wantFirst: "Koramangala"},
		{name: "transposed letters", query: "whitefeild", wantFirst: "Whitefield"},
		{name: "case and accents", query: "  INDIRÁNAGAR ", wantFirst: "Indiranagar"},
		{name: "city", query: "bangalore", wantFirst: "Bangalore"},
		{name: "nothing close", query: "zzzzqqq", wantNone: true},
		{name: "empty", query: "   ", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestLocations(addresses, tt.query, 5)
			if tt.wantNone {
				if len(got) != 0 {
					t.Errorf("suggestLocations(%q) = %v, want none", tt.query, got)
				}
				return
			}
			if len(got) == 0 || got[0] != tt.wantFirst {
				t.Errorf("suggestLocations(%q) = %v, want first %q", tt.query, got, tt.wantFirst)
			}
		})
	}
}

func TestSuggestLocations_SubstringsSortedByName(t *testing.T) {
	got := suggestLocations(addresses, "layout", 5)
	if len(got) < 2 || got[0] != "BTM Layout" || got[1] != "HSR Layout" {
		t.Errorf("suggestLocations(layout) = %v", got)
	}
}

func TestSuggestLocations_RespectsLimit(t *testing.T) {
	if got := suggestLocations(addresses, "a", 2); len(got) > 2 {
		t.Errorf("got %d suggestions, want at most 2", len(got))
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarity("abc", "abc"); got != 1 {
		t.Errorf("similarity of equal strings = %f", got)
	}
	if got := similarity("", ""); got != 1 {
		t.Errorf("similarity of empty strings = %f", got)
	}
	if got := similarity("abc", "xyz"); got >= minSimilarity {
		t.Errorf("similarity(abc, xyz) = %f, want below threshold", got)
	}
}

func TestService_SuggestLocationsDefaultsLimit(t *testing.T) {
	svc := newTestService(&mockFiltersCache{})
	if got := svc.SuggestLocations(context.Background(), "layout", 0); len(got) != 2 {
		t.Errorf("SuggestLocations = %v", got)
	}
}
