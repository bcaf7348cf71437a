package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const listingCollectionName = "listings"

// ListingRepository implements domain.ListingRepository using MongoDB.
// It is the authoritative listing store: the posting-rate window count
// and permanent deletes happen here.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewListingRepository creates the repository and ensures its indexes.
func NewListingRepository(db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	collection := db.Collection(listingCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_email", Value: 1}, {Key: "created_at", Value: -1}}}, // posting-window count + "my listings"
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for listings collection", zap.Error(err))
		// Indexes may already exist; startup continues.
	} else {
		log.Info("Successfully ensured indexes for listings collection")
	}

	return &ListingRepository{
		collection: collection,
		logger:     log.Named("ListingRepository"),
	}, nil
}

// Create inserts a new listing.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	r.logger.Info("Creating listing in DB",
		zap.String("listing_id", listing.ID),
		zap.String("seller_email", listing.SellerEmail))

	if _, err := r.collection.InsertOne(ctx, fromDomainListing(listing)); err != nil {
		r.logger.Error("Failed to insert listing into DB", zap.Error(err))
		return fmt.Errorf("%w: insert failed: %v", domain.ErrRepository, err)
	}
	return nil
}

// Update replaces the stored document for the listing. Review appends go
// through here: the aggregate is recomputed by the domain entity before
// the write.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	r.logger.Debug("Updating listing in DB", zap.String("listing_id", listing.ID))

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": listing.ID}, fromDomainListing(listing))
	if err != nil {
		r.logger.Error("Failed to update listing in DB", zap.String("listing_id", listing.ID), zap.Error(err))
		return fmt.Errorf("%w: update failed: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Delete permanently removes a listing. There is no recovery.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	r.logger.Info("Deleting listing from DB", zap.String("listing_id", id))

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete listing from DB", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("%w: delete failed: %v", domain.ErrRepository, err)
	}
	if res.DeletedCount == 0 {
		r.logger.Warn("No listing found to delete", zap.String("listing_id", id))
		return domain.ErrListingNotFound
	}
	return nil
}

// FindByID fetches a single listing.
func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var doc listingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("Failed to find listing by ID", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: find failed: %v", domain.ErrRepository, err)
	}
	return toDomainListing(&doc), nil
}

// FindByFilter returns the matching listings plus the total count for
// pagination.
func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.SellerEmail != "" {
		query["seller_email"] = filter.SellerEmail
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count listings", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: count failed: %v", domain.ErrRepository, err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			findOptions.SetSkip(int64(filter.Page-1) * int64(filter.Limit))
		}
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find listings by filter", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode listings cursor", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: decode failed: %v", domain.ErrRepository, err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		listings = append(listings, toDomainListing(&docs[i]))
	}
	return listings, total, nil
}

// CountRecentBySeller counts listings this seller created within the
// trailing window. The posting-rate policy is enforced on this count.
func (r *ListingRepository) CountRecentBySeller(ctx context.Context, sellerEmail string, windowHours int) (int64, error) {
	since := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"seller_email": sellerEmail,
		"created_at":   bson.M{"$gte": since},
	})
	if err != nil {
		r.logger.Error("Failed to count recent listings for seller",
			zap.String("seller_email", sellerEmail), zap.Error(err))
		return 0, fmt.Errorf("%w: count failed: %v", domain.ErrRepository, err)
	}
	return count, nil
}
