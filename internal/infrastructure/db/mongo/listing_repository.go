package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

const collectionListings = "waste_listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

type listingDoc struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty"`
	UserID              primitive.ObjectID  `bson:"user_id"`
	WasteType           string              `bson:"waste_type"`
	Quantity            string              `bson:"quantity"`
	Unit                string              `bson:"unit,omitempty"`
	Description         string              `bson:"description,omitempty"`
	Status              string              `bson:"status"`
	Latitude            float64             `bson:"latitude"`
	Longitude           float64             `bson:"longitude"`
	Address             string              `bson:"address,omitempty"`
	City                string              `bson:"city,omitempty"`
	State               string              `bson:"state,omitempty"`
	ZipCode             string              `bson:"zip_code,omitempty"`
	AssignedCollectorID *primitive.ObjectID `bson:"assigned_collector_id,omitempty"`
	ItemType            string              `bson:"item_type"`
	WasteCategory       string              `bson:"waste_category,omitempty"`
	ImageURL            string              `bson:"image_url,omitempty"`
	Price               *float64            `bson:"price,omitempty"`
	CreatedAt           int64               `bson:"created_at"`
	UpdatedAt           int64               `bson:"updated_at"`
	CompletedAt         *int64              `bson:"completed_at,omitempty"`
}

func toListingDoc(l *domain.Listing) (listingDoc, error) {
	owner, err := primitive.ObjectIDFromHex(l.UserID)
	if err != nil {
		return listingDoc{}, fmt.Errorf("%w: invalid user ID", domain.ErrInvalidInput)
	}

	doc := listingDoc{
		UserID:        owner,
		WasteType:     l.WasteType,
		Quantity:      l.Quantity,
		Unit:          l.Unit,
		Description:   l.Description,
		Status:        string(l.Status),
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		Address:       l.Address,
		City:          l.City,
		State:         l.State,
		ZipCode:       l.ZipCode,
		ItemType:      string(l.ItemType),
		WasteCategory: string(l.WasteCategory),
		ImageURL:      l.ImageURL,
		Price:         l.Price,
		CreatedAt:     l.CreatedAt.Unix(),
		UpdatedAt:     l.UpdatedAt.Unix(),
	}
	if l.AssignedCollectorID != "" {
		collector, err := primitive.ObjectIDFromHex(l.AssignedCollectorID)
		if err != nil {
			return listingDoc{}, fmt.Errorf("%w: invalid assignedCollectorId", domain.ErrInvalidInput)
		}
		doc.AssignedCollectorID = &collector
	}
	if l.CompletedAt != nil {
		ts := l.CompletedAt.Unix()
		doc.CompletedAt = &ts
	}
	return doc, nil
}

func (d listingDoc) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:            d.ID.Hex(),
		UserID:        d.UserID.Hex(),
		WasteType:     d.WasteType,
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		Description:   d.Description,
		Status:        domain.WasteStatus(d.Status),
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		ZipCode:       d.ZipCode,
		ItemType:      domain.ItemType(d.ItemType),
		WasteCategory: domain.WasteCategory(d.WasteCategory),
		ImageURL:      d.ImageURL,
		Price:         d.Price,
		CreatedAt:     unixToTime(d.CreatedAt),
		UpdatedAt:     unixToTime(d.UpdatedAt),
	}
	if d.AssignedCollectorID != nil {
		l.AssignedCollectorID = d.AssignedCollectorID.Hex()
	}
	if d.CompletedAt != nil {
		ts := unixToTime(*d.CompletedAt)
		l.CompletedAt = &ts
	}
	return l
}

func (r *ListingRepository) Insert(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	doc, err := toListingDoc(l)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	created := *l
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d listingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return d.toDomain(), nil
}

// Find returns listings matching the query, newest first. Zero-valued query
// fields leave that dimension unfiltered.
func (r *ListingRepository) Find(ctx context.Context, q ports.ListingQuery) ([]*domain.Listing, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if q.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(q.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid owner filter", domain.ErrInvalidInput)
		}
		filter["user_id"] = oid
	}
	if q.CollectorID != "" {
		oid, err := primitive.ObjectIDFromHex(q.CollectorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid collector filter", domain.ErrInvalidInput)
		}
		filter["assigned_collector_id"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cur.Close(ctx)

	var listings []*domain.Listing
	for cur.Next(ctx) {
		var d listingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		listings = append(listings, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// Update replaces the whole document. Last write wins.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	oid, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}
	doc, err := toListingDoc(l)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the query layer's filters.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_collector_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
