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

const wishlistCollectionName = "wishlist"

// WishlistRepository implements domain.WishlistStore using MongoDB.
// Wishlist membership is owned here, not by the interaction layer, which
// only passes toggle requests through.
type WishlistRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewWishlistRepository creates the repository and ensures the unique
// (user, listing) index the toggle semantics depend on.
func NewWishlistRepository(db *mongo.Database, log *logger.Logger) (*WishlistRepository, error) {
	collection := db.Collection(wishlistCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "listing_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("Failed to create index for wishlist collection", zap.Error(err))
	}

	return &WishlistRepository{
		collection: collection,
		logger:     log.Named("WishlistRepository"),
	}, nil
}

// Toggle adds the listing to the user's wishlist, or removes it when it
// is already present.
func (r *WishlistRepository) Toggle(ctx context.Context, userEmail, listingID string) error {
	if userEmail == "" || listingID == "" {
		return fmt.Errorf("%w: user email and listing id are required", domain.ErrInvalidInput)
	}

	filter := bson.M{"user_email": userEmail, "listing_id": listingID}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Wishlist toggle delete failed", zap.String("listing_id", listingID), zap.Error(err))
		return fmt.Errorf("%w: toggle failed: %v", domain.ErrRepository, err)
	}
	if res.DeletedCount > 0 {
		r.logger.Debug("Wishlist entry removed", zap.String("user_email", userEmail), zap.String("listing_id", listingID))
		return nil
	}

	_, err = r.collection.InsertOne(ctx, wishlistDocument{
		UserEmail: userEmail,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent toggle won the race; membership is already set.
			return nil
		}
		r.logger.Error("Wishlist toggle insert failed", zap.String("listing_id", listingID), zap.Error(err))
		return fmt.Errorf("%w: toggle failed: %v", domain.ErrRepository, err)
	}
	r.logger.Debug("Wishlist entry added", zap.String("user_email", userEmail), zap.String("listing_id", listingID))
	return nil
}

// IsWishlisted reports current membership for a (user, listing) pair.
func (r *WishlistRepository) IsWishlisted(ctx context.Context, userEmail, listingID string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"user_email": userEmail, "listing_id": listingID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("%w: lookup failed: %v", domain.ErrRepository, err)
	}
	return true, nil
}
