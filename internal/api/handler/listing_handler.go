package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// Create handles POST /api/listings.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  ports.ListingView
// @Failure      400   {object}  map[string]string
// @Router       /api/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateListingInput{
		UserID:        req.OwnerID,
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
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, view)
}

// List handles GET /api/listings with optional status / ownerId /
// collectorId query filters.
//
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Param        status       query     string  false  "Status filter (case-insensitive)"
// @Param        ownerId      query     string  false  "Owner filter"
// @Param        collectorId  query     string  false  "Assigned collector filter"
// @Success      200          {array}   ports.ListingView
// @Router       /api/listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	views, err := h.service.Find(c.Request().Context(), ports.ListingFilter{
		Status:      c.QueryParam("status"),
		OwnerID:     c.QueryParam("ownerId"),
		CollectorID: c.QueryParam("collectorId"),
	})
	if err != nil {
		return err
	}
	if views == nil {
		views = []*ports.ListingView{}
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /api/listings/:id.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  ports.ListingView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/listings/:id.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      updateListingRequest  true  "Partial patch"
// @Success      200   {object}  ports.ListingView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	in, err := decodeUpdateRequest(c)
	if err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/listings/:id.
//
// @Summary      Delete a listing and its comment thread
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  deleteListingResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteListingResponse{Message: "listing deleted"})
}
