package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Priyakatariya/smartbackend/internal/api/metrics"
	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// CommentManager creates and retrieves comment threads scoped to a listing.
type CommentManager struct {
	comments ports.CommentRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewCommentManager(comments ports.CommentRepository, users ports.UserRepository, logger zerolog.Logger) *CommentManager {
	return &CommentManager{comments: comments, users: users, logger: logger}
}

// AppendComments appends a batch of comments to the listing. The batch is
// best-effort: entries with missing fields, a malformed author reference, or
// an unknown author are skipped with a warning, and an insert failure drops
// only that entry. Partial success is expected and is not an error.
func (m *CommentManager) AppendComments(ctx context.Context, listingID string, entries []ports.CommentEntry) int {
	appended := 0
	for _, e := range entries {
		if e.UserID == "" || e.Text == "" {
			m.logger.Warn().Str("listing_id", listingID).Msg("comment skipped: missing userId or text")
			metrics.CommentsSkippedTotal.WithLabelValues("missing_fields").Inc()
			continue
		}
		if !domain.IsValidRef(e.UserID) {
			m.logger.Warn().Str("listing_id", listingID).Str("user_id", e.UserID).Msg("comment skipped: invalid userId")
			metrics.CommentsSkippedTotal.WithLabelValues("invalid_author").Inc()
			continue
		}
		if _, err := m.users.FindByID(ctx, e.UserID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				m.logger.Warn().Str("listing_id", listingID).Str("user_id", e.UserID).Msg("comment skipped: author not found")
				metrics.CommentsSkippedTotal.WithLabelValues("author_not_found").Inc()
			} else {
				m.logger.Warn().Err(err).Str("listing_id", listingID).Msg("comment skipped: author lookup failed")
				metrics.CommentsSkippedTotal.WithLabelValues("author_not_found").Inc()
			}
			continue
		}

		createdAt := time.Now().UTC()
		if e.CreatedAt != nil {
			createdAt = e.CreatedAt.UTC()
		}

		comment := &domain.Comment{
			ListingID: listingID,
			UserID:    e.UserID,
			Text:      e.Text,
			CreatedAt: createdAt,
		}
		if _, err := m.comments.Insert(ctx, comment); err != nil {
			m.logger.Warn().Err(err).Str("listing_id", listingID).Msg("comment skipped: insert failed")
			metrics.CommentsSkippedTotal.WithLabelValues("insert_failed").Inc()
			continue
		}
		metrics.CommentsAppendedTotal.Inc()
		appended++
	}
	return appended
}

// CommentsFor returns the listing's thread ordered by createdAt ascending,
// each comment hydrated with its author's {displayName, name, email}.
func (m *CommentManager) CommentsFor(ctx context.Context, listingID string) ([]ports.CommentView, error) {
	comments, err := m.comments.FindByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("comments for listing %s: %w", listingID, err)
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	authors, err := m.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("comments for listing %s: hydrate authors: %w", listingID, err)
	}

	views := make([]ports.CommentView, 0, len(comments))
	for _, c := range comments {
		view := ports.CommentView{
			ID:        c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if author, ok := authors[c.UserID]; ok {
			view.Author = &ports.AuthorView{
				ID:          author.ID,
				DisplayName: author.DisplayName,
				Name:        author.Name,
				Email:       author.Email,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// DeleteAllFor removes every comment referencing the listing. Idempotent.
func (m *CommentManager) DeleteAllFor(ctx context.Context, listingID string) error {
	deleted, err := m.comments.DeleteByListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("delete comments for listing %s: %w", listingID, err)
	}
	if deleted > 0 {
		m.logger.Debug().Str("listing_id", listingID).Int64("deleted", deleted).Msg("comment thread removed")
	}
	return nil
}
