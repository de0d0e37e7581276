package domain

import (
	"strings"
	"time"
)

// WasteStatus represents the lifecycle state of a waste listing.
type WasteStatus string

const (
	StatusPending   WasteStatus = "PENDING"
	StatusAssigned  WasteStatus = "ASSIGNED"
	StatusCompleted WasteStatus = "COMPLETED"
	StatusCancelled WasteStatus = "CANCELLED"
)

// ParseWasteStatus matches s case-insensitively against the status set.
func ParseWasteStatus(s string) (WasteStatus, bool) {
	switch WasteStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusAssigned:
		return StatusAssigned, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// ItemType distinguishes waste pickups from second-hand item listings.
type ItemType string

const (
	ItemTypeWaste   ItemType = "WASTE"
	ItemTypeOldItem ItemType = "OLD_ITEM"
)

// ParseItemType matches s case-insensitively against the item type set.
func ParseItemType(s string) (ItemType, bool) {
	switch ItemType(strings.ToUpper(strings.TrimSpace(s))) {
	case ItemTypeWaste:
		return ItemTypeWaste, true
	case ItemTypeOldItem:
		return ItemTypeOldItem, true
	}
	return "", false
}

// WasteCategory classifies the material of a waste listing.
type WasteCategory string

const (
	CategoryBiodegradable     WasteCategory = "BIODEGRADABLE"
	CategoryNonBiodegradable  WasteCategory = "NON_BIODEGRADABLE"
	CategoryRecyclablePlastic WasteCategory = "RECYCLABLE_PLASTIC"
	CategoryRecyclablePaper   WasteCategory = "RECYCLABLE_PAPER"
	CategoryRecyclableMetal   WasteCategory = "RECYCLABLE_METAL"
	CategoryEWaste            WasteCategory = "E_WASTE"
	CategoryHazardous         WasteCategory = "HAZARDOUS"
	CategoryOther             WasteCategory = "OTHER"
)

var wasteCategories = map[WasteCategory]struct{}{
	CategoryBiodegradable:     {},
	CategoryNonBiodegradable:  {},
	CategoryRecyclablePlastic: {},
	CategoryRecyclablePaper:   {},
	CategoryRecyclableMetal:   {},
	CategoryEWaste:            {},
	CategoryHazardous:         {},
	CategoryOther:             {},
}

// ParseWasteCategory matches s case-insensitively against the category set.
func ParseWasteCategory(s string) (WasteCategory, bool) {
	c := WasteCategory(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := wasteCategories[c]; ok {
		return c, true
	}
	return "", false
}

// Listing is the core aggregate: an item or batch of waste posted by a
// generator, optionally assigned to a collector.
//
// Invariants maintained by the lifecycle service:
//   - UserID is set at creation and never changes.
//   - CompletedAt is non-nil iff Status == COMPLETED.
//   - Assigning a collector to a PENDING listing advances it to ASSIGNED;
//     clearing the collector of an ASSIGNED listing reverts it to PENDING.
type Listing struct {
	ID                  string        `json:"id"`
	UserID              string        `json:"userId"`
	WasteType           string        `json:"wasteType"`
	Quantity            string        `json:"quantity"`
	Unit                string        `json:"unit,omitempty"`
	Description         string        `json:"description,omitempty"`
	Status              WasteStatus   `json:"status"`
	Latitude            float64       `json:"latitude"`
	Longitude           float64       `json:"longitude"`
	Address             string        `json:"address,omitempty"`
	City                string        `json:"city,omitempty"`
	State               string        `json:"state,omitempty"`
	ZipCode             string        `json:"zipCode,omitempty"`
	AssignedCollectorID string        `json:"assignedCollectorId,omitempty"`
	ItemType            ItemType      `json:"itemType"`
	WasteCategory       WasteCategory `json:"wasteCategory,omitempty"`
	ImageURL            string        `json:"imageUrl,omitempty"`
	Price               *float64      `json:"price,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	CompletedAt         *time.Time    `json:"completedAt,omitempty"`
}
