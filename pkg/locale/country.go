package locale

import (
	"strings"
)

const (
	DefaultTimezone = "Asia/Kolkata"
	DefaultRegion   = "IN"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2
	Name            string
	PhonePrefixes   []string // e.g. ["+91", "91"]
	DefaultTimezone string   // IANA identifier
	Currency        string   // ISO 4217
}

var (
	Countries = map[string]Country{
		"IN": {
			Code:            "IN",
			Name:            "India",
			PhonePrefixes:   []string{"+91", "91"},
			DefaultTimezone: "Asia/Kolkata",
			Currency:        "INR",
		},
	}

	TimeZoneTags = map[string][]string{
		"IN": {"Asia/Kolkata", "Asia/Calcutta", "IST"},
	}
)

// DetectRegion maps an IANA zone to the region used for phone parsing.
func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(strings.TrimSpace(tz), z) {
				return region
			}
		}
	}
	return DefaultRegion
}
