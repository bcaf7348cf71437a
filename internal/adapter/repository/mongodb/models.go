package mongodb

import (
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
)

// listingDocument is the MongoDB shape of a listing. The domain entity
// stays free of bson tags; mapping is this package's concern.
type listingDocument struct {
	ID           string           `bson:"_id"`
	Title        string           `bson:"title"`
	Description  string           `bson:"description"`
	Category     string           `bson:"category"`
	ImageURL     string           `bson:"image_url"`
	Location     string           `bson:"location"`
	Price        float64          `bson:"price"`
	PhoneNumber  string           `bson:"phone_number"`
	SellerName   string           `bson:"seller_name"`
	SellerEmail  string           `bson:"seller_email"`
	CreatedAt    time.Time        `bson:"created_at"`
	Rating       float64          `bson:"rating"`
	ReviewsCount int32            `bson:"reviews_count"`
	Reviews      []reviewDocument `bson:"reviews"`
}

type reviewDocument struct {
	ID        string    `bson:"id"`
	UserName  string    `bson:"user_name"`
	Rating    int32     `bson:"rating"`
	Comment   string    `bson:"comment"`
	Timestamp time.Time `bson:"timestamp"`
}

type wishlistDocument struct {
	ID        string    `bson:"_id,omitempty"`
	UserEmail string    `bson:"user_email"`
	ListingID string    `bson:"listing_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func fromDomainListing(l *domain.Listing) *listingDocument {
	reviews := make([]reviewDocument, 0, len(l.Reviews))
	for _, r := range l.Reviews {
		reviews = append(reviews, reviewDocument{
			ID:        r.ID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Timestamp: r.Timestamp,
		})
	}
	return &listingDocument{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		Category:     string(l.Category),
		ImageURL:     l.ImageURL,
		Location:     l.Location,
		Price:        l.Price,
		PhoneNumber:  l.PhoneNumber,
		SellerName:   l.SellerName,
		SellerEmail:  l.SellerEmail,
		CreatedAt:    l.CreatedAt,
		Rating:       l.Rating,
		ReviewsCount: l.ReviewsCount,
		Reviews:      reviews,
	}
}

func toDomainListing(doc *listingDocument) *domain.Listing {
	reviews := make([]domain.Review, 0, len(doc.Reviews))
	for _, r := range doc.Reviews {
		reviews = append(reviews, domain.Review{
			ID:        r.ID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Timestamp: r.Timestamp,
		})
	}
	return &domain.Listing{
		ID:           doc.ID,
		Title:        doc.Title,
		Description:  doc.Description,
		Category:     domain.Category(doc.Category),
		ImageURL:     doc.ImageURL,
		Location:     doc.Location,
		Price:        doc.Price,
		PhoneNumber:  doc.PhoneNumber,
		SellerName:   doc.SellerName,
		SellerEmail:  doc.SellerEmail,
		CreatedAt:    doc.CreatedAt,
		Rating:       doc.Rating,
		ReviewsCount: doc.ReviewsCount,
		Reviews:      reviews,
	}
}
