package domain

import "time"

// Comment is a free-text note attached to a listing. Comments are created
// only through a listing update, are never edited, and are removed when
// their listing is deleted.
type Comment struct {
	ID        string    `json:"id"`
	ListingID string    `json:"wasteListingId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
