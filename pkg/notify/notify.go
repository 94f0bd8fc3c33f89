// Package notify carries the short user-facing messages that accompany
// marketplace responses. A UI shows them as toasts verbatim.
package notify

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

const (
	TitleLoginRequired       = "Login required"
	TitleSelectDates         = "Select dates"
	TitleInvalidDates        = "Invalid dates"
	TitleReservationSuccess  = "Reservation confirmed!"
	TitleReservationFailed   = "Failed to make reservation"
	TitleAddedToWishlist     = "Added to wishlist"
	TitleRemovedFromWishlist = "Removed from wishlist"
	TitleWishlistFailed      = "Error"
	TitleRemoved             = "Removed"

	DescLoginToContinue    = "Please login to continue"
	DescLoginToReserve     = "Please login to make a reservation"
	DescLoginToSave        = "Please login to save PGs to your wishlist"
	DescSelectDates        = "Please select check-in and check-out dates"
	DescInvalidDates       = "Check-out must be after check-in"
	DescPastCheckIn        = "Check-in cannot be in the past"
	DescReservationPending = "Your booking request has been submitted"
	DescWishlistFailed     = "Failed to update wishlist. Please try again."
	DescRemovedSavedEntry  = "PG removed from your saved list"
)

const (
	RedirectAuth    = "/auth"
	RedirectProfile = "/profile"
)

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant"`
}

func Info(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDefault}
}

func Destructive(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDestructive}
}
