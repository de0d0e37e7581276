package handler

// --- Request types for /api/listings ---

type createListingRequest struct {
	OwnerID       string   `json:"ownerId"       validate:"required"`
	WasteType     string   `json:"wasteType"     validate:"required"`
	Quantity      string   `json:"quantity"      validate:"required"`
	Unit          string   `json:"unit,omitempty"`
	Description   string   `json:"description,omitempty"`
	Latitude      *float64 `json:"latitude"      validate:"required"`
	Longitude     *float64 `json:"longitude"     validate:"required"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	ZipCode       string   `json:"zipCode,omitempty"`
	ItemType      string   `json:"itemType"      validate:"required"`
	WasteCategory string   `json:"wasteCategory,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Price         *float64 `json:"price,omitempty"`
}

type commentEntryRequest struct {
	AuthorID  string `json:"authorId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"` // RFC 3339, optional
}

// updateListingRequest is a partial patch: nil pointers are absent fields.
// assignedCollectorId is handled separately by the mapper because the wire
// format distinguishes absent from an explicit null (clear the assignment).
type updateListingRequest struct {
	Status        *string               `json:"status,omitempty"`
	WasteType     *string               `json:"wasteType,omitempty"`
	Quantity      *string               `json:"quantity,omitempty"`
	Unit          *string               `json:"unit,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Latitude      *float64              `json:"latitude,omitempty"`
	Longitude     *float64              `json:"longitude,omitempty"`
	Address       *string               `json:"address,omitempty"`
	City          *string               `json:"city,omitempty"`
	State         *string               `json:"state,omitempty"`
	ZipCode       *string               `json:"zipCode,omitempty"`
	ItemType      *string               `json:"itemType,omitempty"`
	WasteCategory *string               `json:"wasteCategory,omitempty"`
	ImageURL      *string               `json:"imageUrl,omitempty"`
	Price         *float64              `json:"price,omitempty"`
	Comments      []commentEntryRequest `json:"comments,omitempty"`
}

type deleteListingResponse struct {
	Message string `json:"message"`
}
