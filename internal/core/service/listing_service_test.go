package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type listingFixture struct {
	svc      *ListingService
	listings *stubListingRepo
	users    *stubUserRepo
	comments *stubCommentRepo
}

func newListingFixture() *listingFixture {
	users := newStubUserRepo()
	listings := newStubListingRepo()
	comments := newStubCommentRepo()
	mgr := NewCommentManager(comments, users, discardLogger)
	return &listingFixture{
		svc:      NewListingService(listings, users, mgr, nil, discardLogger),
		listings: listings,
		users:    users,
		comments: comments,
	}
}

func (f *listingFixture) seedUser(t *testing.T, email string, userType domain.UserType) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{
		Email:       email,
		Name:        email,
		DisplayName: email,
		UserType:    userType,
		Role:        domain.RoleFor(userType),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func minimalCreateInput(ownerID string) ports.CreateListingInput {
	return ports.CreateListingInput{
		UserID:    ownerID,
		WasteType: "organic",
		Quantity:  "5",
		Unit:      "kg",
		Latitude:  f64(27.1751),
		Longitude: f64(78.0421),
		ItemType:  "WASTE",
	}
}

func (f *listingFixture) seedListing(t *testing.T, ownerID string) *ports.ListingView {
	t.Helper()
	view, err := f.svc.Create(context.Background(), minimalCreateInput(ownerID))
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return view
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestListingService_Create_ForcesPending(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)

	view, err := f.svc.Create(context.Background(), minimalCreateInput(owner.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", view.Status)
	}
	if view.Collector != nil {
		t.Error("new listing must have no assigned collector")
	}
	if view.CompletedAt != nil {
		t.Error("new listing must have no completedAt")
	}
	if len(view.Comments) != 0 {
		t.Errorf("new listing must have an empty thread, got %d", len(view.Comments))
	}
	if view.Owner == nil || view.Owner.Email != "alice@example.com" {
		t.Errorf("owner not hydrated: %+v", view.Owner)
	}
	if view.Owner != nil && view.Owner.Role != domain.RoleLister {
		t.Errorf("owner role = %s, want LISTER", view.Owner.Role)
	}
}

func TestListingService_Create_CaseInsensitiveEnums(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)

	in := minimalCreateInput(owner.ID)
	in.ItemType = "old_item"
	in.WasteCategory = "e_waste"

	view, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemType != domain.ItemTypeOldItem {
		t.Errorf("itemType = %s, want OLD_ITEM", view.ItemType)
	}
	if view.WasteCategory != domain.CategoryEWaste {
		t.Errorf("wasteCategory = %s, want E_WASTE", view.WasteCategory)
	}
}

func TestListingService_Create_Validation(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)

	cases := []struct {
		name   string
		mutate func(*ports.CreateListingInput)
	}{
		{"missing owner", func(in *ports.CreateListingInput) { in.UserID = "" }},
		{"malformed owner", func(in *ports.CreateListingInput) { in.UserID = "not-a-ref" }},
		{"missing wasteType", func(in *ports.CreateListingInput) { in.WasteType = "" }},
		{"missing quantity", func(in *ports.CreateListingInput) { in.Quantity = "" }},
		{"missing latitude", func(in *ports.CreateListingInput) { in.Latitude = nil }},
		{"missing longitude", func(in *ports.CreateListingInput) { in.Longitude = nil }},
		{"missing itemType", func(in *ports.CreateListingInput) { in.ItemType = "" }},
		{"unknown itemType", func(in *ports.CreateListingInput) { in.ItemType = "TRASH" }},
		{"unknown wasteCategory", func(in *ports.CreateListingInput) { in.WasteCategory = "PLUTONIUM" }},
	}

	for _, tc := range cases {
		in := minimalCreateInput(owner.ID)
		tc.mutate(&in)
		if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if len(f.listings.byID) != 0 {
		t.Errorf("no listing may be persisted on validation failure, got %d", len(f.listings.byID))
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestListingService_Get_MalformedID(t *testing.T) {
	f := newListingFixture()
	_, err := f.svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("malformed id must be ErrInvalidInput, not not-found; got %v", err)
	}
}

func TestListingService_Get_NotFound(t *testing.T) {
	f := newListingFixture()
	_, err := f.svc.Get(context.Background(), testID(404))
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update — assignment state machine
// ---------------------------------------------------------------------------

func TestListingService_Update_AssignAdvancesPending(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)
	created := f.seedListing(t, owner.ID)

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true,
		CollectorID:  collector.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != domain.StatusAssigned {
		t.Errorf("status = %s, want ASSIGNED", view.Status)
	}
	if view.Collector == nil || view.Collector.ID != collector.ID {
		t.Errorf("collector not hydrated: %+v", view.Collector)
	}
}

func TestListingService_Update_ClearRevertsAssigned(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)
	created := f.seedListing(t, owner.ID)

	_, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: collector.ID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: "",
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if view.Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING after clearing collector", view.Status)
	}
	if view.Collector != nil {
		t.Errorf("collector must be gone, got %+v", view.Collector)
	}
}

func TestListingService_Update_AssignLeavesCompletedAlone(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)
	created := f.seedListing(t, owner.ID)

	if _, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{Status: str("completed")}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: collector.ID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if view.Status != domain.StatusCompleted {
		t.Errorf("assigning a collector must not move a COMPLETED listing, got %s", view.Status)
	}
	if view.Collector == nil {
		t.Error("collector reference itself must still be stored")
	}
}

func TestListingService_Update_ExplicitStatusOverridesAutoTransition(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)
	created := f.seedListing(t, owner.ID)

	// Assignment alone would yield ASSIGNED; the explicit status wins.
	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true,
		CollectorID:  collector.ID,
		Status:       str("cancelled"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != domain.StatusCancelled {
		t.Errorf("status = %s, explicit status must override the auto transition", view.Status)
	}
}

// ---------------------------------------------------------------------------
// Update — completedAt invariant
// ---------------------------------------------------------------------------

func TestListingService_Update_CompletedAtLifecycle(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	created := f.seedListing(t, owner.ID)

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{Status: str("COMPLETED")})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if view.CompletedAt == nil {
		t.Fatal("completedAt must be stamped when status becomes COMPLETED")
	}
	stamped := *view.CompletedAt

	// Re-setting COMPLETED must not move the stamp.
	view, err = f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{Status: str("completed")})
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if view.CompletedAt == nil || !view.CompletedAt.Equal(stamped) {
		t.Errorf("completedAt moved on idempotent re-set: %v vs %v", view.CompletedAt, stamped)
	}

	// Leaving COMPLETED clears the stamp.
	view, err = f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{Status: str("pending")})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if view.CompletedAt != nil {
		t.Errorf("completedAt must be cleared for status %s", view.Status)
	}
}

// ---------------------------------------------------------------------------
// Update — validation and field merge
// ---------------------------------------------------------------------------

func TestListingService_Update_Validation(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	created := f.seedListing(t, owner.ID)

	if _, err := f.svc.Update(context.Background(), "bad-id", ports.UpdateListingInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("malformed id: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), testID(404), ports.UpdateListingInput{}); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("missing listing: expected ErrListingNotFound, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: "not-a-ref",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("malformed collector: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Status: str("DELIVERED"),
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown status: expected ErrInvalidInput, got %v", err)
	}

	// Failed patches must not have mutated the stored listing.
	stored := f.listings.byID[created.ID]
	if stored.Status != domain.StatusPending || stored.AssignedCollectorID != "" {
		t.Errorf("listing mutated by a rejected patch: %+v", stored)
	}
}

func TestListingService_Update_ShallowMerge(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	created := f.seedListing(t, owner.ID)

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Description: str("two bags behind the gate"),
		Price:       f64(120),
		City:        str("Agra"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Description != "two bags behind the gate" {
		t.Errorf("description not merged: %q", view.Description)
	}
	if view.Price == nil || *view.Price != 120 {
		t.Errorf("price not merged: %v", view.Price)
	}
	if view.City != "Agra" {
		t.Errorf("city not merged: %q", view.City)
	}
	// Untouched fields survive.
	if view.WasteType != "organic" || view.Quantity != "5" || view.Unit != "kg" {
		t.Errorf("untouched fields changed: %+v", view)
	}
	// Owner is immutable: still the creator.
	if f.listings.byID[created.ID].UserID != owner.ID {
		t.Error("owner reference must never change")
	}
}

func TestListingService_Update_ForwardsCommentsBestEffort(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)
	created := f.seedListing(t, owner.ID)

	view, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Comments: []ports.CommentEntry{
			{UserID: collector.ID, Text: "on my way"},
			{UserID: "ghost", Text: "should be skipped"},
		},
	})
	if err != nil {
		t.Fatalf("a skipped comment must not fail the update: %v", err)
	}
	if len(view.Comments) != 1 {
		t.Fatalf("expected 1 comment in the hydrated view, got %d", len(view.Comments))
	}
	if view.Comments[0].Author == nil || view.Comments[0].Author.Email != "john@example.com" {
		t.Errorf("comment author not hydrated: %+v", view.Comments[0].Author)
	}
}

// ---------------------------------------------------------------------------
// Find
// ---------------------------------------------------------------------------

func TestListingService_Find_StatusCaseInsensitive(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)

	pending := f.seedListing(t, owner.ID)
	assigned := f.seedListing(t, owner.ID)
	if _, err := f.svc.Update(context.Background(), assigned.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: collector.ID,
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	lower, err := f.svc.Find(context.Background(), ports.ListingFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("find lower: %v", err)
	}
	upper, err := f.svc.Find(context.Background(), ports.ListingFilter{Status: "PENDING"})
	if err != nil {
		t.Fatalf("find upper: %v", err)
	}

	if len(lower) != 1 || len(upper) != 1 {
		t.Fatalf("expected exactly the pending listing, got %d and %d", len(lower), len(upper))
	}
	if lower[0].ID != pending.ID || upper[0].ID != pending.ID {
		t.Error("case variants must select the same listing")
	}
}

func TestListingService_Find_InvalidFilterValuesIgnored(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	f.seedListing(t, owner.ID)
	f.seedListing(t, owner.ID)

	// An unknown status and a malformed owner id leave those dimensions
	// unfiltered instead of erroring or matching nothing.
	views, err := f.svc.Find(context.Background(), ports.ListingFilter{
		Status:  "NOT_A_STATUS",
		OwnerID: "not-a-ref",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("expected all 2 listings, got %d", len(views))
	}
}

func TestListingService_Find_ByOwnerAndCollector(t *testing.T) {
	f := newListingFixture()
	alice := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	bob := f.seedUser(t, "bob@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)

	aliceListing := f.seedListing(t, alice.ID)
	f.seedListing(t, bob.ID)
	if _, err := f.svc.Update(context.Background(), aliceListing.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: collector.ID,
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	byOwner, err := f.svc.Find(context.Background(), ports.ListingFilter{OwnerID: alice.ID})
	if err != nil {
		t.Fatalf("find by owner: %v", err)
	}
	if len(byOwner) != 1 || byOwner[0].ID != aliceListing.ID {
		t.Errorf("owner filter wrong: %d results", len(byOwner))
	}

	byCollector, err := f.svc.Find(context.Background(), ports.ListingFilter{CollectorID: collector.ID})
	if err != nil {
		t.Fatalf("find by collector: %v", err)
	}
	if len(byCollector) != 1 || byCollector[0].ID != aliceListing.ID {
		t.Errorf("collector filter wrong: %d results", len(byCollector))
	}
}

func TestListingService_Find_NewestFirst(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)

	now := time.Now().UTC()
	older, _ := f.listings.Insert(context.Background(), &domain.Listing{
		UserID: owner.ID, WasteType: "paper", Quantity: "1",
		Status: domain.StatusPending, ItemType: domain.ItemTypeWaste,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	})
	newer, _ := f.listings.Insert(context.Background(), &domain.Listing{
		UserID: owner.ID, WasteType: "metal", Quantity: "2",
		Status: domain.StatusPending, ItemType: domain.ItemTypeWaste,
		CreatedAt: now, UpdatedAt: now,
	})

	views, err := f.svc.Find(context.Background(), ports.ListingFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(views))
	}
	if views[0].ID != newer.ID || views[1].ID != older.ID {
		t.Error("listings must be ordered createdAt descending")
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestListingService_Delete_CascadesComments(t *testing.T) {
	f := newListingFixture()
	owner := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	created := f.seedListing(t, owner.ID)

	if _, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Comments: []ports.CommentEntry{
			{UserID: owner.ID, Text: "a"},
			{UserID: owner.ID, Text: "b"},
			{UserID: owner.ID, Text: "c"},
		},
	}); err != nil {
		t.Fatalf("seed comments: %v", err)
	}

	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(f.comments.byListing[created.ID]) != 0 {
		t.Errorf("comments must be cascade-deleted, %d remain", len(f.comments.byListing[created.ID]))
	}
	if _, err := f.svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("listing must be gone, got %v", err)
	}
}

func TestListingService_Delete_Errors(t *testing.T) {
	f := newListingFixture()

	if err := f.svc.Delete(context.Background(), "bad"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("malformed id: expected ErrInvalidInput, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), testID(404)); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("missing listing: expected ErrListingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// End-to-end scenario
// ---------------------------------------------------------------------------

func TestListingLifecycle_GeneratorAndCollector(t *testing.T) {
	f := newListingFixture()
	generator := f.seedUser(t, "alice@example.com", domain.UserTypeGenerator)
	collector := f.seedUser(t, "john@example.com", domain.UserTypeCollector)

	created, err := f.svc.Create(context.Background(), ports.CreateListingInput{
		UserID:    generator.ID,
		WasteType: "organic",
		Quantity:  "5",
		Unit:      "kg",
		Latitude:  f64(27.17),
		Longitude: f64(78.04),
		ItemType:  "WASTE",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusPending || created.Collector != nil {
		t.Fatalf("fresh listing must be PENDING and unassigned: %+v", created)
	}

	assigned, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		CollectorSet: true, CollectorID: collector.ID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Status != domain.StatusAssigned {
		t.Fatalf("status = %s, want ASSIGNED", assigned.Status)
	}

	completed, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Status: str("completed"),
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.StatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("expected COMPLETED with completedAt, got %+v", completed)
	}

	if _, err := f.svc.Update(context.Background(), created.ID, ports.UpdateListingInput{
		Comments: []ports.CommentEntry{{UserID: collector.ID, Text: "picked up"}},
	}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	final, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(final.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(final.Comments))
	}
	c := final.Comments[0]
	if c.Text != "picked up" || c.Author == nil || c.Author.ID != collector.ID {
		t.Errorf("unexpected comment: %+v", c)
	}
}
