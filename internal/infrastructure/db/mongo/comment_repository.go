package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID primitive.ObjectID `bson:"listing_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Text      string             `bson:"text"`
	CreatedAt int64              `bson:"created_at"`
}

func (d commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		ListingID: d.ListingID.Hex(),
		UserID:    d.UserID.Hex(),
		Text:      d.Text,
		CreatedAt: unixToTime(d.CreatedAt),
	}
}

func (r *CommentRepository) Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	listingID, err := primitive.ObjectIDFromHex(c.ListingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid listing ID", domain.ErrInvalidInput)
	}
	userID, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, commentDoc{
		ListingID: listingID,
		UserID:    userID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByListing returns the listing's thread, oldest first.
func (r *CommentRepository) FindByListing(ctx context.Context, listingID string) ([]*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{"listing_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// DeleteByListing removes the whole thread and reports how many comments went
// with it. Deleting an empty thread is a no-op.
func (r *CommentRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"listing_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete comments: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the thread-lookup index.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
