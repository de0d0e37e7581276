package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// decodeUpdateRequest reads the patch body once and decodes it twice: into
// the typed request for the regular fields, and into a raw field map so
// assignedCollectorId can be mapped tri-state — absent (no change), null or
// empty (clear the assignment), a reference (assign).
func decodeUpdateRequest(c echo.Context) (ports.UpdateListingInput, error) {
	var in ports.UpdateListingInput

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var req updateListingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in = ports.UpdateListingInput{
		Status:        req.Status,
		WasteType:     req.WasteType,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Description:   req.Description,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		ItemType:      req.ItemType,
		WasteCategory: req.WasteCategory,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
	}

	if rawCollector, ok := raw["assignedCollectorId"]; ok {
		in.CollectorSet = true
		if string(rawCollector) != "null" {
			var id string
			if err := json.Unmarshal(rawCollector, &id); err != nil {
				return in, echo.NewHTTPError(http.StatusBadRequest, "assignedCollectorId must be a string or null")
			}
			in.CollectorID = id
		}
	}

	for _, entry := range req.Comments {
		mapped := ports.CommentEntry{UserID: entry.AuthorID, Text: entry.Text}
		if entry.CreatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
				mapped.CreatedAt = &ts
			}
		}
		in.Comments = append(in.Comments, mapped)
	}

	return in, nil
}
