package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/mailer"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
	"go.uber.org/zap"
)

const (
	postingLimit       = 2
	postingWindowHours = 24

	subjectListingCreated = "listing.created"
	subjectListingDeleted = "listing.deleted"
	subjectReviewCreated  = "review.created"
)

// CreateListingInput carries the seller-provided fields for a new ad.
type CreateListingInput struct {
	Title       string
	Description string
	Category    domain.Category
	ImageURL    string
	Location    string
	Price       float64
	PhoneNumber string
	SellerName  string
	SellerEmail string
}

// ListingUsecase owns the listing lifecycle: creation under the posting
// policy, cached reads, search, reviews, and owner-checked deletion.
type ListingUsecase struct {
	repo    domain.ListingRepository
	cache   ListingCache
	events  EventPublisher
	mail    mailer.Mailer
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

// NewListingUsecase creates a ListingUsecase. cache and mail may be nil;
// both are best-effort collaborators.
func NewListingUsecase(
	repo domain.ListingRepository,
	cache ListingCache,
	events EventPublisher,
	mail mailer.Mailer,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:    repo,
		cache:   cache,
		events:  events,
		mail:    mail,
		metrics: m,
		logger:  log.Named("ListingUsecase"),
	}
}

// CreateListing validates the input, enforces the posting-rate policy
// (at most 2 listings per seller in any trailing 24h window) and
// persists the new ad.
func (uc *ListingUsecase) CreateListing(ctx context.Context, input CreateListingInput) (*domain.Listing, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, input.Category)
	}
	if input.SellerEmail == "" {
		return nil, fmt.Errorf("%w: seller email is required", domain.ErrInvalidInput)
	}

	recent, err := uc.repo.CountRecentBySeller(ctx, input.SellerEmail, postingWindowHours)
	if err != nil {
		uc.logger.Error("Posting-rate check failed", zap.String("seller_email", input.SellerEmail), zap.Error(err))
		return nil, err
	}
	if recent >= postingLimit {
		uc.logger.Warn("Posting limit exceeded",
			zap.String("seller_email", input.SellerEmail),
			zap.Int64("recent_count", recent))
		return nil, domain.ErrPostingLimitExceeded
	}

	listing := &domain.Listing{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Location:    input.Location,
		Price:       input.Price,
		PhoneNumber: input.PhoneNumber,
		SellerName:  input.SellerName,
		SellerEmail: input.SellerEmail,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to create listing", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, err
	}

	uc.metrics.ListingsCreatedTotal.Inc()
	uc.publish(ctx, subjectListingCreated, map[string]string{
		"listing_id":   listing.ID,
		"seller_email": listing.SellerEmail,
		"category":     string(listing.Category),
	})
	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID), zap.String("seller_email", listing.SellerEmail))
	return listing, nil
}

// GetListing returns a single listing, reading through the cache.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("Cache read failed, falling through to repository", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// SearchListings queries listings by filter and returns the page plus
// the total match count.
func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, filter.Category)
	}
	return uc.repo.FindByFilter(ctx, filter)
}

// DeleteListing permanently removes a listing. Ownership is re-checked
// here regardless of what the caller's UI showed; a non-owner gets
// ErrForbidden.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id, requesterEmail string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !listing.IsOwner(requesterEmail) {
		uc.logger.Warn("Delete rejected for non-owner",
			zap.String("listing_id", id),
			zap.String("requester_email", requesterEmail))
		return domain.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("Cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
		}
	}

	uc.metrics.ListingsDeletedTotal.Inc()
	uc.publish(ctx, subjectListingDeleted, map[string]string{
		"listing_id":   id,
		"seller_email": listing.SellerEmail,
	})

	if uc.mail != nil {
		if err := uc.mail.SendListingDeletedEmail(listing.SellerEmail, listing.Title); err != nil {
			uc.logger.Warn("Listing deleted email not sent", zap.String("listing_id", id), zap.Error(err))
		}
	}

	uc.logger.Info("Listing deleted", zap.String("listing_id", id))
	return nil
}

// AddReview appends a review to a listing and recomputes its rating
// aggregate.
func (uc *ListingUsecase) AddReview(ctx context.Context, listingID, userName, comment string, rating int32) (*domain.Listing, error) {
	review, err := domain.NewReview(userName, comment, rating)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	listing.AppendReview(*review)
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to persist review", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Cache refresh failed after review", zap.String("listing_id", listingID), zap.Error(err))
		}
	}

	uc.metrics.ReviewsCreatedTotal.Inc()
	uc.publish(ctx, subjectReviewCreated, map[string]interface{}{
		"listing_id": listingID,
		"review_id":  review.ID,
		"rating":     review.Rating,
	})
	return listing, nil
}

// publish is a best-effort hand-off; a bus failure never fails the
// operation that triggered it.
func (uc *ListingUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
