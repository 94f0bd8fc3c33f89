package model

import "strings"

const (
	GenderBoys     = "boys"
	GenderGirls    = "girls"
	GenderCoLiving = "coliving"

	FoodVeg    = "veg"
	FoodNonVeg = "nonveg"
	FoodBoth   = "both"

	// "all" disables the gender or food predicate of a search.
	FilterAll = "all"

	BathroomPrivate = "private"
	BathroomShared  = "shared"
)

type Listing struct {
	ID            string   `json:"id" bson:"_id" validate:"required,max=64"`
	Name          string   `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Address       string   `json:"address" bson:"address" validate:"required,min=2,max=200"`
	Latitude      float64  `json:"latitude" bson:"latitude" validate:"latitude"`
	Longitude     float64  `json:"longitude" bson:"longitude" validate:"longitude"`
	Rating        float64  `json:"rating" bson:"rating" validate:"min=0,max=5"`
	ReviewCount   int      `json:"review_count" bson:"review_count" validate:"min=0"`
	Rent          int      `json:"rent" bson:"rent" validate:"min=0"`
	Deposit       int      `json:"deposit" bson:"deposit" validate:"min=0"`
	Gender        string   `json:"gender" bson:"gender" validate:"required,oneof=boys girls coliving"`
	Food          string   `json:"food" bson:"food" validate:"required,oneof=veg nonveg both"`
	Images        []string `json:"images" bson:"images" validate:"dive,url"`
	Amenities     []string `json:"amenities" bson:"amenities" validate:"dive,required"`
	Verified      bool     `json:"verified" bson:"verified"`
	Distance      float64  `json:"distance" bson:"distance" validate:"min=0"`
	OwnerPhone    string   `json:"owner_phone" bson:"owner_phone" validate:"required"`
	OwnerWhatsApp string   `json:"owner_whatsapp" bson:"owner_whatsapp"`
	Rules         []string `json:"rules" bson:"rules"`
	Description   string   `json:"description" bson:"description" validate:"max=2000"`
	Rooms         []Room   `json:"rooms,omitempty" bson:"rooms,omitempty" validate:"dive"`
}

type Room struct {
	ID           string `json:"id" bson:"id" validate:"required"`
	Name         string `json:"name" bson:"name" validate:"required"`
	Description  string `json:"description" bson:"description"`
	Sleeps       int    `json:"sleeps" bson:"sleeps" validate:"min=1,max=8"`
	BathroomType string `json:"bathroom_type" bson:"bathroom_type" validate:"oneof=private shared"`
	Rent         int    `json:"rent" bson:"rent" validate:"min=0"`
	Deposit      int    `json:"deposit" bson:"deposit" validate:"min=0"`
	Available    int    `json:"available" bson:"available" validate:"min=0"`
	IsPopular    bool   `json:"is_popular" bson:"is_popular"`
}

// PrimaryImage is the first image, or "" when the listing has none.
func (l *Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

func (l *Listing) HasAmenity(tag string) bool {
	for _, a := range l.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}

func (l *Listing) Room(id string) (*Room, bool) {
	for i := range l.Rooms {
		if l.Rooms[i].ID == id {
			return &l.Rooms[i], true
		}
	}
	return nil, false
}

// RentFor is the monthly rent of the named room, or the base rent when
// roomID is empty. ok is false for an unknown room.
func (l *Listing) RentFor(roomID string) (rent int, ok bool) {
	if roomID == "" {
		return l.Rent, true
	}
	r, ok := l.Room(roomID)
	if !ok {
		return 0, false
	}
	return r.Rent, true
}

// StartingRent is the lowest monthly rent across the base rent and room variants.
func (l *Listing) StartingRent() int {
	lowest := l.Rent
	for _, r := range l.Rooms {
		if r.Rent > 0 && r.Rent < lowest {
			lowest = r.Rent
		}
	}
	return lowest
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (l *Listing) Clone() *Listing {
	c := *l
	c.Images = append([]string(nil), l.Images...)
	c.Amenities = append([]string(nil), l.Amenities...)
	c.Rules = append([]string(nil), l.Rules...)
	c.Rooms = append([]Room(nil), l.Rooms...)
	return &c
}

var amenityLabels = map[string]string{
	"wifi":         "WiFi",
	"ac":           "AC",
	"laundry":      "Laundry",
	"parking":      "Parking",
	"power_backup": "Power Backup",
	"gym":          "Gym",
	"pool":         "Pool",
	"cctv":         "CCTV",
	"meals":        "Meals",
}

// AmenityLabel returns the display label for a tag. Unknown tags are shown as-is.
func AmenityLabel(tag string) string {
	if label, ok := amenityLabels[strings.ToLower(tag)]; ok {
		return label
	}
	return tag
}

func IsKnownGender(g string) bool {
	return g == GenderBoys || g == GenderGirls || g == GenderCoLiving
}

func IsKnownFood(f string) bool {
	return f == FoodVeg || f == FoodNonVeg || f == FoodBoth
}
