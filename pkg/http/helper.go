package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "pgstay/pkg/errors"

	"github.com/goccy/go-json"
)

const DateLayout = "2006-01-02"

// DecodeJSON decodes the request body into target. An empty body leaves target untouched.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.InvalidInput("failed to read request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}

// ParseDate parses a yyyy-MM-dd calendar date in loc. An empty value yields the zero time.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid date, expected yyyy-MM-dd: " + value)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
