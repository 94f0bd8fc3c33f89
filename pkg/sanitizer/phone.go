package sanitizer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164, reading national numbers in region.
// Numbers that cannot be dialled return "".
func NormalizePhone(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsPossibleNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

type ContactLinks struct {
	Phone    string `json:"phone"`
	Call     string `json:"call"`
	WhatsApp string `json:"whatsapp"`
}

// BuildContactLinks returns the dial and chat links for an owner phone, with
// the chat prefilled with an enquiry about listingName. ok is false when the
// phone is unusable.
func BuildContactLinks(phone, region, listingName string) (ContactLinks, bool) {
	e164 := NormalizePhone(phone, region)
	if e164 == "" {
		return ContactLinks{}, false
	}

	text := fmt.Sprintf("Hi, I'm interested in %s. Is it available?", listingName)
	digits := strings.TrimPrefix(e164, "+")

	return ContactLinks{
		Phone:    e164,
		Call:     "tel:" + e164,
		WhatsApp: "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20"),
	}, true
}
