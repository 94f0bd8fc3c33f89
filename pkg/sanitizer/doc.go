// Package sanitizer normalizes user and owner supplied text before it is
// matched, stored or rendered.
//
// All normalization functions are idempotent. Invalid input yields an empty
// value rather than an error.
//
// Normalization includes:
//   - Phone numbers: E.164 for a default region, plus tel: and WhatsApp links
//   - Search text: transliterated to ASCII, lowercased and trimmed
//   - Tags: lowercase identifiers such as amenity tags ("Power Backup" becomes "power_backup")
//   - Strings: collapse whitespace and trim
//   - URLs: enforce HTTPS, lowercase hosts, drop tracking parameters
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
