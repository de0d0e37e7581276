package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Priyakatariya/smartbackend/internal/api/metrics"
	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// ViewCache caches hydrated listing views. A nil error with a nil view is a
// miss. Implementations must never fail a request: callers treat every cache
// error as a miss.
type ViewCache interface {
	Get(ctx context.Context, id string) (*ports.ListingView, error)
	Set(ctx context.Context, id string, view *ports.ListingView) error
	Invalidate(ctx context.Context, id string) error
}

// ListingService owns the listing lifecycle (creation, the assignment state
// machine, field mutation, deletion) and the hydrated query layer.
type ListingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	comments ports.CommentManager
	cache    ViewCache // optional, may be nil
	logger   zerolog.Logger
}

func NewListingService(
	listings ports.ListingRepository,
	users ports.UserRepository,
	comments ports.CommentManager,
	cache ViewCache,
	logger zerolog.Logger,
) *ListingService {
	return &ListingService{
		listings: listings,
		users:    users,
		comments: comments,
		cache:    cache,
		logger:   logger,
	}
}

// Create validates the input eagerly and persists a new listing. Status is
// forced to PENDING regardless of anything the client supplied.
func (s *ListingService) Create(ctx context.Context, in ports.CreateListingInput) (*ports.ListingView, error) {
	if in.UserID == "" || in.WasteType == "" || in.Quantity == "" || in.Latitude == nil || in.Longitude == nil || in.ItemType == "" {
		return nil, fmt.Errorf("%w: userId, wasteType, quantity, latitude, longitude and itemType are required", domain.ErrInvalidInput)
	}
	if !domain.IsValidRef(in.UserID) {
		return nil, fmt.Errorf("%w: invalid user ID", domain.ErrInvalidInput)
	}
	itemType, ok := domain.ParseItemType(in.ItemType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid itemType: %s", domain.ErrInvalidInput, in.ItemType)
	}
	var category domain.WasteCategory
	if in.WasteCategory != "" {
		category, ok = domain.ParseWasteCategory(in.WasteCategory)
		if !ok {
			return nil, fmt.Errorf("%w: invalid wasteCategory: %s", domain.ErrInvalidInput, in.WasteCategory)
		}
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		UserID:        in.UserID,
		WasteType:     in.WasteType,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		Description:   in.Description,
		Status:        domain.StatusPending,
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		ItemType:      itemType,
		WasteCategory: category,
		ImageURL:      in.ImageURL,
		Price:         in.Price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.listings.Insert(ctx, listing)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(itemType)).Inc()
	s.logger.Info().Str("listing_id", created.ID).Str("item_type", string(itemType)).Msg("listing created")

	return s.hydrate(ctx, created)
}

// Get returns the fully hydrated listing for id.
func (s *ListingService) Get(ctx context.Context, id string) (*ports.ListingView, error) {
	if !domain.IsValidRef(id) {
		return nil, fmt.Errorf("%w: invalid listing ID", domain.ErrInvalidInput)
	}

	if s.cache != nil {
		if view, err := s.cache.Get(ctx, id); err == nil && view != nil {
			metrics.ViewCacheTotal.WithLabelValues("hit").Inc()
			return view, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Str("listing_id", id).Msg("view cache read failed")
		}
		metrics.ViewCacheTotal.WithLabelValues("miss").Inc()
	}

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.hydrate(ctx, listing)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, id, view); err != nil {
			s.logger.Warn().Err(err).Str("listing_id", id).Msg("view cache write failed")
		}
	}
	return view, nil
}

// Find returns hydrated listings matching the filter, newest first. Filter
// values that do not parse — an unknown status, a malformed owner or
// collector id — are ignored rather than rejected, leaving that dimension
// unfiltered.
func (s *ListingService) Find(ctx context.Context, f ports.ListingFilter) ([]*ports.ListingView, error) {
	var q ports.ListingQuery
	if f.Status != "" {
		if status, ok := domain.ParseWasteStatus(f.Status); ok {
			q.Status = status
		} else {
			s.logger.Debug().Str("status", f.Status).Msg("ignoring unknown status filter")
		}
	}
	if f.OwnerID != "" && domain.IsValidRef(f.OwnerID) {
		q.OwnerID = f.OwnerID
	}
	if f.CollectorID != "" && domain.IsValidRef(f.CollectorID) {
		q.CollectorID = f.CollectorID
	}

	listings, err := s.listings.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	return s.hydrateMany(ctx, listings)
}

// Update applies a partial patch to the listing. Validation happens before
// any mutation; then, in order: the collector assignment (with its automatic
// PENDING↔ASSIGNED transitions), an explicit status change (which overrides
// the automatic one and maintains completedAt), the whitelisted field merge,
// and finally the best-effort comment batch. The re-hydrated listing is
// returned after everything is applied.
func (s *ListingService) Update(ctx context.Context, id string, in ports.UpdateListingInput) (*ports.ListingView, error) {
	if !domain.IsValidRef(id) {
		return nil, fmt.Errorf("%w: invalid listing ID", domain.ErrInvalidInput)
	}

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the whole patch before touching the listing.
	if in.CollectorSet && in.CollectorID != "" && !domain.IsValidRef(in.CollectorID) {
		return nil, fmt.Errorf("%w: invalid assignedCollectorId", domain.ErrInvalidInput)
	}
	var explicitStatus domain.WasteStatus
	hasExplicitStatus := false
	if in.Status != nil {
		explicitStatus, hasExplicitStatus = domain.ParseWasteStatus(*in.Status)
		if !hasExplicitStatus {
			return nil, fmt.Errorf("%w: invalid status: %s", domain.ErrInvalidInput, *in.Status)
		}
	}
	var itemType domain.ItemType
	if in.ItemType != nil {
		var ok bool
		itemType, ok = domain.ParseItemType(*in.ItemType)
		if !ok {
			return nil, fmt.Errorf("%w: invalid itemType: %s", domain.ErrInvalidInput, *in.ItemType)
		}
	}
	var category domain.WasteCategory
	if in.WasteCategory != nil && *in.WasteCategory != "" {
		var ok bool
		category, ok = domain.ParseWasteCategory(*in.WasteCategory)
		if !ok {
			return nil, fmt.Errorf("%w: invalid wasteCategory: %s", domain.ErrInvalidInput, *in.WasteCategory)
		}
	}

	before := listing.Status

	// 1. Collector assignment with automatic transitions.
	if in.CollectorSet {
		if in.CollectorID != "" {
			listing.AssignedCollectorID = in.CollectorID
			if listing.Status == domain.StatusPending {
				listing.Status = domain.StatusAssigned
			}
		} else {
			listing.AssignedCollectorID = ""
			if listing.Status == domain.StatusAssigned {
				listing.Status = domain.StatusPending
			}
		}
	}

	// 2. An explicit status overrides the automatic transition and maintains
	// the completedAt invariant: stamped iff COMPLETED, stamp is idempotent.
	if hasExplicitStatus {
		listing.Status = explicitStatus
		if explicitStatus == domain.StatusCompleted {
			if listing.CompletedAt == nil {
				now := time.Now().UTC()
				listing.CompletedAt = &now
			}
		} else if listing.CompletedAt != nil {
			listing.CompletedAt = nil
		}
	}

	if listing.Status != before {
		metrics.StatusTransitionsTotal.WithLabelValues(string(before), string(listing.Status)).Inc()
	}

	// 3. Whitelisted shallow merge. Owner and id are deliberately not here.
	applyPatch(listing, in, itemType, category)
	listing.UpdatedAt = time.Now().UTC()

	if err := s.listings.Update(ctx, listing); err != nil {
		s.logger.Error().Err(err).Str("listing_id", id).Msg("failed to update listing")
		return nil, err
	}

	// 4. Comment batch, after the listing mutation. Individual failures are
	// already logged and never fail the update.
	if len(in.Comments) > 0 {
		s.comments.AppendComments(ctx, id, in.Comments)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("listing_id", id).Msg("view cache invalidation failed")
		}
	}

	return s.hydrate(ctx, listing)
}

// applyPatch copies the present patch fields onto the listing. The whitelist
// is explicit so a future caller cannot mutate the owner reference or the id.
func applyPatch(l *domain.Listing, in ports.UpdateListingInput, itemType domain.ItemType, category domain.WasteCategory) {
	if in.WasteType != nil {
		l.WasteType = *in.WasteType
	}
	if in.Quantity != nil {
		l.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		l.Unit = *in.Unit
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Latitude != nil {
		l.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = *in.Longitude
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.City != nil {
		l.City = *in.City
	}
	if in.State != nil {
		l.State = *in.State
	}
	if in.ZipCode != nil {
		l.ZipCode = *in.ZipCode
	}
	if in.ItemType != nil {
		l.ItemType = itemType
	}
	if in.WasteCategory != nil {
		l.WasteCategory = category
	}
	if in.ImageURL != nil {
		l.ImageURL = *in.ImageURL
	}
	if in.Price != nil {
		l.Price = in.Price
	}
}

// Delete removes the listing and its whole comment thread. The thread is
// deleted first so a partial failure can never leave orphaned comments.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if !domain.IsValidRef(id) {
		return fmt.Errorf("%w: invalid listing ID", domain.ErrInvalidInput)
	}
	if _, err := s.listings.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.comments.DeleteAllFor(ctx, id); err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("listing_id", id).Msg("view cache invalidation failed")
		}
	}

	metrics.ListingsDeletedTotal.Inc()
	s.logger.Info().Str("listing_id", id).Msg("listing deleted")
	return nil
}

// hydrate expands a single listing into its denormalized view.
func (s *ListingService) hydrate(ctx context.Context, l *domain.Listing) (*ports.ListingView, error) {
	ids := []string{l.UserID}
	if l.AssignedCollectorID != "" {
		ids = append(ids, l.AssignedCollectorID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate listing %s: %w", l.ID, err)
	}
	return s.buildView(ctx, l, users)
}

// hydrateMany expands a page of listings, resolving all referenced users in
// one batch.
func (s *ListingService) hydrateMany(ctx context.Context, listings []*domain.Listing) ([]*ports.ListingView, error) {
	ids := make([]string, 0, 2*len(listings))
	for _, l := range listings {
		ids = append(ids, l.UserID)
		if l.AssignedCollectorID != "" {
			ids = append(ids, l.AssignedCollectorID)
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate listings: %w", err)
	}

	views := make([]*ports.ListingView, 0, len(listings))
	for _, l := range listings {
		view, err := s.buildView(ctx, l, users)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ListingService) buildView(ctx context.Context, l *domain.Listing, users map[string]*domain.User) (*ports.ListingView, error) {
	comments, err := s.comments.CommentsFor(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []ports.CommentView{}
	}

	view := &ports.ListingView{
		ID:            l.ID,
		WasteType:     l.WasteType,
		Quantity:      l.Quantity,
		Unit:          l.Unit,
		Description:   l.Description,
		Status:        l.Status,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		Address:       l.Address,
		City:          l.City,
		State:         l.State,
		ZipCode:       l.ZipCode,
		ItemType:      l.ItemType,
		WasteCategory: l.WasteCategory,
		ImageURL:      l.ImageURL,
		Price:         l.Price,
		Comments:      comments,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		CompletedAt:   l.CompletedAt,
	}
	if owner, ok := users[l.UserID]; ok {
		view.Owner = profileView(owner)
	}
	if l.AssignedCollectorID != "" {
		if collector, ok := users[l.AssignedCollectorID]; ok {
			view.Collector = profileView(collector)
		}
	}
	return view, nil
}

// profileView projects a user for embedding in a listing view. The password
// hash is not part of the projection.
func profileView(u *domain.User) *ports.ProfileView {
	return &ports.ProfileView{
		ID:           u.ID,
		DisplayName:  u.DisplayName,
		Name:         u.Name,
		Email:        u.Email,
		UserType:     u.UserType,
		Role:         u.Role,
		Latitude:     u.Latitude,
		Longitude:    u.Longitude,
		Address:      u.Address,
		City:         u.City,
		State:        u.State,
		ZipCode:      u.ZipCode,
		ContactPhone: u.ContactPhone,
		ContactEmail: u.ContactEmail,
	}
}
