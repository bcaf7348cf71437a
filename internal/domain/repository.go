package domain

import "context"

// ListingRepository defines the interface for listing persistence.
// Implementations are authoritative for the posting-rate policy and for
// ownership on delete; the interaction layer only gates affordances.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, int64, error)

	// CountRecentBySeller returns how many listings the seller created
	// within the trailing window ending now. Used to enforce the
	// 2-per-24h posting policy.
	CountRecentBySeller(ctx context.Context, sellerEmail string, windowHours int) (int64, error)
}

// WishlistStore is the external wishlist collaborator. The core never
// holds wishlist state itself; it only passes toggle requests through.
type WishlistStore interface {
	Toggle(ctx context.Context, userEmail, listingID string) error
	IsWishlisted(ctx context.Context, userEmail, listingID string) (bool, error)
}
