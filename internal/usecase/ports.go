package usecase

import (
	"context"
	"errors"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
)

// ErrShareAborted is returned by a ShareGateway when the user dismissed
// the native share sheet. An abort is not a failure: the caller stays
// silent instead of falling back to the clipboard.
var ErrShareAborted = errors.New("share aborted by user")

// SharePayload is what gets handed to the native share capability.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareGateway is the native share capability. Available reports whether
// the capability exists on this platform; Share hands the payload over.
type ShareGateway interface {
	Available() bool
	Share(ctx context.Context, payload SharePayload) error
}

// Clipboard is the fallback share target.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Confirmer gates destructive actions behind an explicit user decision.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// EventPublisher is the fire-and-forget delegate bus. Hand-offs such as
// chat initiation and wishlist toggles go out through it; the core never
// waits for downstream acknowledgement.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ImageStorage persists listing images and returns a public URL.
type ImageStorage interface {
	Upload(ctx context.Context, originalFileName string, data []byte) (string, error)
}

// ListingCache is a read-through cache for single-listing lookups.
// GetListing returns (nil, nil) on a miss.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}
