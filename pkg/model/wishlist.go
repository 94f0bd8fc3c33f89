package model

import "time"

// SavedListing is one wishlist row. The listing fields are a snapshot taken
// when the entry was saved and are not kept in sync with the catalog.
type SavedListing struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required"`
	PGID       string    `json:"pg_id" bson:"pg_id" validate:"required"`
	PGName     string    `json:"pg_name" bson:"pg_name" validate:"required"`
	PGLocation string    `json:"pg_location" bson:"pg_location"`
	PGPrice    int       `json:"pg_price" bson:"pg_price" validate:"min=0"`
	PGImage    string    `json:"pg_image,omitempty" bson:"pg_image,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func NewSavedListing(userID string, l *Listing) *SavedListing {
	return &SavedListing{
		UserID:     userID,
		PGID:       l.ID,
		PGName:     l.Name,
		PGLocation: l.Address,
		PGPrice:    l.Rent,
		PGImage:    l.PrimaryImage(),
	}
}
