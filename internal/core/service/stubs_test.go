package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

// testID returns a deterministic, well-formed 24-hex-char reference.
func testID(n int) string {
	return fmt.Sprintf("%024d", n)
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	order   []string
	seq     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrEmailExists
	}
	clone := *u
	if clone.ID == "" {
		r.seq++
		clone.ID = testID(1000 + r.seq)
	}
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.byID[id]
		out = append(out, &clone)
	}
	return out, nil
}

type stubListingRepo struct {
	byID      map[string]*domain.Listing
	order     []string // insertion order
	seq       int
	insertErr error
	updateErr error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Insert(_ context.Context, l *domain.Listing) (*domain.Listing, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := *l
	r.seq++
	clone.ID = testID(r.seq)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

// Find applies the same filters the real Mongo repo would use and returns
// matches newest first.
func (r *stubListingRepo) Find(_ context.Context, q ports.ListingQuery) ([]*domain.Listing, error) {
	var matched []*domain.Listing
	for i := len(r.order) - 1; i >= 0; i-- {
		l := r.byID[r.order[i]]
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		if q.OwnerID != "" && l.UserID != q.OwnerID {
			continue
		}
		if q.CollectorID != "" && l.AssignedCollectorID != q.CollectorID {
			continue
		}
		clone := *l
		matched = append(matched, &clone)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubListingRepo) Update(_ context.Context, l *domain.Listing) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubCommentRepo struct {
	byListing map[string][]*domain.Comment
	seq       int
	insertErr error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byListing: make(map[string][]*domain.Comment)}
}

func (r *stubCommentRepo) Insert(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := *c
	r.seq++
	clone.ID = testID(5000 + r.seq)
	r.byListing[c.ListingID] = append(r.byListing[c.ListingID], &clone)
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByListing(_ context.Context, listingID string) ([]*domain.Comment, error) {
	comments := r.byListing[listingID]
	out := make([]*domain.Comment, 0, len(comments))
	for _, c := range comments {
		clone := *c
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubCommentRepo) DeleteByListing(_ context.Context, listingID string) (int64, error) {
	n := int64(len(r.byListing[listingID]))
	delete(r.byListing, listingID)
	return n, nil
}

// stubAuthenticator is a transparent stand-in for the bcrypt/JWT adapter.
type stubAuthenticator struct{}

func (stubAuthenticator) HashCredential(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (stubAuthenticator) VerifyCredential(plain, hashed string) bool {
	return hashed == "hashed:"+plain
}

func (stubAuthenticator) IssueToken(u *domain.User) (string, error) {
	return "token-" + u.Email, nil
}
