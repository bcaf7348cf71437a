package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// --- Category Enum ---

// Category classifies a listing into one of the marketplace's fixed sections.
type Category string

const (
	CategoryCars        Category = "Cars"
	CategoryPhones      Category = "Phones"
	CategoryClothing    Category = "Clothing"
	CategoryGames       Category = "Games"
	CategoryElectronics Category = "Electronics"
	CategoryRealEstate  Category = "Real Estate"
	CategoryFurniture   Category = "Furniture"
	CategoryOthers      Category = "Others"
)

// IsValid checks if the Category is one of the defined constants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCars, CategoryPhones, CategoryClothing, CategoryGames,
		CategoryElectronics, CategoryRealEstate, CategoryFurniture, CategoryOthers:
		return true
	}
	return false
}

// --- Review Entity ---

// Review is a single buyer review embedded in a listing. Reviews are
// immutable once created and only ever appended, never edited in place.
type Review struct {
	ID        string
	UserName  string
	Rating    int32 // 1-5 stars
	Comment   string
	Timestamp time.Time
}

// NewReview creates a review, validating the rating bounds.
func NewReview(userName, comment string, rating int32) (*Review, error) {
	if userName == "" {
		return nil, errors.New("userName cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	return &Review{
		ID:        uuid.New().String(),
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		Timestamp: time.Now().UTC(),
	}, nil
}

// --- Listing Entity ---

// Listing represents a single marketplace advertisement with its embedded
// review aggregate. Prices are stored in the reference currency (USD);
// display conversion happens via Currency.
//
// Invariant: ReviewsCount == len(Reviews) at all times, and Rating is 0
// exactly when Reviews is empty.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Category     Category
	ImageURL     string
	Location     string
	Price        float64 // non-negative, reference currency
	PhoneNumber  string  // raw seller contact, any format
	SellerName   string
	SellerEmail  string
	CreatedAt    time.Time
	Rating       float64 // mean of review ratings, 0 when no reviews
	ReviewsCount int32
	Reviews      []Review // insertion order, newest appended last
}

// AppendReview adds a review to the listing and recomputes the aggregate.
// This is the only mutation a listing supports besides deletion.
func (l *Listing) AppendReview(review Review) {
	l.Reviews = append(l.Reviews, review)
	l.ReviewsCount = int32(len(l.Reviews))

	var sum float64
	for _, r := range l.Reviews {
		sum += float64(r.Rating)
	}
	l.Rating = sum / float64(len(l.Reviews))
}

// ConvertedPrice returns the listing price in the given display currency,
// rounded to the nearest whole unit. A nil currency falls back to the
// unit-rate reference currency; this is a defensive fallback, not a
// user-facing default.
func (l *Listing) ConvertedPrice(currency *Currency) int64 {
	rate := 1.0
	if currency != nil && currency.Rate != 0 {
		rate = currency.Rate
	}
	return int64(math.Round(l.Price * rate))
}

// IsOwner reports whether the viewer owns this listing. Comparison is
// exact-string with no normalization; callers are responsible for
// consistent casing upstream.
func (l *Listing) IsOwner(viewerEmail string) bool {
	return viewerEmail != "" && l.SellerEmail != "" && viewerEmail == l.SellerEmail
}

// CanDelete reports whether the delete affordance should be exposed for
// this viewer: the context must explicitly opt in AND the viewer must be
// the owner. The authoritative ownership check still happens server-side
// on the actual delete.
func (l *Listing) CanDelete(viewerEmail string, showDeleteButton bool) bool {
	return showDeleteButton && l.IsOwner(viewerEmail)
}

// Filter holds parameters for querying listings.
type Filter struct {
	Query       string
	Category    Category
	MinPrice    float64
	MaxPrice    float64
	SellerEmail string
	Page        int32
	Limit       int32
}
