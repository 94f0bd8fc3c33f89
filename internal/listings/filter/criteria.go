// Package filter holds the search criteria a listing search is evaluated
// against, and the parsing of those criteria from query parameters.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	listingserrors "pgstay/internal/listings/errors"
	"pgstay/pkg/model"
	"pgstay/pkg/sanitizer"

	"github.com/goccy/go-json"
)

const (
	ParamLocation  = "location"
	ParamGender    = "gender"
	ParamFood      = "food"
	ParamMinRent   = "minRent"
	ParamMaxRent   = "maxRent"
	ParamAmenities = "amenities"
)

// Bound is an optional rent limit. The zero value is unset.
type Bound struct {
	Value int
	Set   bool
}

func At(v int) Bound {
	return Bound{Value: v, Set: true}
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(b.Value)), nil
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Bound{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = At(v)
	return nil
}

type Criteria struct {
	Location  string   `json:"location" validate:"max=100"`
	Gender    string   `json:"gender" validate:"required,oneof=all boys girls coliving"`
	Food      string   `json:"food" validate:"required,oneof=all veg nonveg"`
	MinRent   Bound    `json:"min_rent"`
	MaxRent   Bound    `json:"max_rent"`
	Amenities []string `json:"amenities" validate:"max=10,dive,required,max=32"`
}

// Default is the state of a search page opened without parameters.
func Default(maxRent int) Criteria {
	return Criteria{
		Gender:    model.FilterAll,
		Food:      model.FilterAll,
		MaxRent:   At(maxRent),
		Amenities: []string{},
	}
}

// FromQuery seeds criteria from query parameters. Missing parameters keep
// their defaults, and a rent bound of 0 is read as unset.
func FromQuery(q url.Values, defaultMaxRent int) (Criteria, error) {
	c := Default(defaultMaxRent)

	c.Location = sanitizer.TrimAndNormalize(q.Get(ParamLocation))

	if g := strings.ToLower(strings.TrimSpace(q.Get(ParamGender))); g != "" {
		c.Gender = g
	}
	if f := strings.ToLower(strings.TrimSpace(q.Get(ParamFood))); f != "" {
		c.Food = f
	}

	var err error
	if q.Has(ParamMinRent) {
		if c.MinRent, err = parseBound(ParamMinRent, q.Get(ParamMinRent)); err != nil {
			return Criteria{}, err
		}
	}
	if q.Has(ParamMaxRent) {
		if c.MaxRent, err = parseBound(ParamMaxRent, q.Get(ParamMaxRent)); err != nil {
			return Criteria{}, err
		}
	}

	if raw := q.Get(ParamAmenities); raw != "" {
		c.Amenities = sanitizer.NormalizeTags(strings.Split(raw, ","))
	}

	return c, nil
}

func parseBound(name, raw string) (Bound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Bound{}, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return Bound{}, fmt.Errorf("%w: %s must be an integer, got %q", listingserrors.ErrInvalidCriteria, name, raw)
	}
	if v < 0 {
		return Bound{}, fmt.Errorf("%w: %s must not be negative", listingserrors.ErrInvalidCriteria, name)
	}
	if v == 0 {
		return Bound{}, nil
	}
	return At(v), nil
}

// Query renders the criteria back into search parameters.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	if c.Location != "" {
		q.Set(ParamLocation, c.Location)
	}
	q.Set(ParamGender, c.Gender)
	q.Set(ParamFood, c.Food)
	if c.MinRent.Set {
		q.Set(ParamMinRent, strconv.Itoa(c.MinRent.Value))
	}
	if c.MaxRent.Set {
		q.Set(ParamMaxRent, strconv.Itoa(c.MaxRent.Value))
	}
	if len(c.Amenities) > 0 {
		q.Set(ParamAmenities, strings.Join(c.Amenities, ","))
	}
	return q
}

// Matches reports whether l satisfies every predicate of c. Location is
// display state only and never narrows the result.
func (c Criteria) Matches(l *model.Listing) bool {
	if c.Gender != "" && c.Gender != model.FilterAll && l.Gender != c.Gender {
		return false
	}
	if c.Food != "" && c.Food != model.FilterAll && l.Food != c.Food && l.Food != model.FoodBoth {
		return false
	}
	if c.MinRent.Set && l.Rent < c.MinRent.Value {
		return false
	}
	if c.MaxRent.Set && l.Rent > c.MaxRent.Value {
		return false
	}
	for _, a := range c.Amenities {
		if !l.HasAmenity(a) {
			return false
		}
	}
	return true
}
