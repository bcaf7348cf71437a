package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
	"go.uber.org/zap"
)

const (
	subjectChatStart       = "chat.start"
	subjectWishlistToggled = "wishlist.toggled"

	deleteConfirmMessage = "Are you sure? This ad will be permanently deleted."
)

// ShareOutcome reports which path a share attempt took.
type ShareOutcome string

const (
	ShareOutcomeNative  ShareOutcome = "native"
	ShareOutcomeAborted ShareOutcome = "aborted"
	ShareOutcomeCopied  ShareOutcome = "copied"
	ShareOutcomeFailed  ShareOutcome = "failed"
)

// ShareResult is what the caller surfaces after a share attempt. Toast
// is empty when nothing should be shown to the user.
type ShareResult struct {
	Outcome ShareOutcome `json:"outcome"`
	Toast   string       `json:"toast,omitempty"`
}

// ActionSet lists the affordances a given viewer gets on a listing.
type ActionSet struct {
	CanChat     bool `json:"canChat"`
	CanWhatsApp bool `json:"canWhatsApp"`
	CanShare    bool `json:"canShare"`
	CanWishlist bool `json:"canWishlist"`
	CanDelete   bool `json:"canDelete"`
}

// InteractionUsecase covers everything a viewer does with a listing
// short of editing it: chat hand-off, WhatsApp deep link, share,
// wishlist toggle, and the confirm-gated delete request.
type InteractionUsecase struct {
	listings    *ListingUsecase
	wishlist    domain.WishlistStore
	events      EventPublisher
	gateway     ShareGateway
	clipboard   Clipboard
	confirmer   Confirmer
	metrics     *metrics.MetricsManager
	logger      *logger.Logger
	shareBase   string
	countryCode string
}

// NewInteractionUsecase creates an InteractionUsecase. shareBase is the
// public site root used in share links; countryCode replaces a leading
// zero in local phone numbers.
func NewInteractionUsecase(
	listings *ListingUsecase,
	wishlist domain.WishlistStore,
	events EventPublisher,
	gateway ShareGateway,
	clipboard Clipboard,
	confirmer Confirmer,
	m *metrics.MetricsManager,
	log *logger.Logger,
	shareBase, countryCode string,
) *InteractionUsecase {
	return &InteractionUsecase{
		listings:    listings,
		wishlist:    wishlist,
		events:      events,
		gateway:     gateway,
		clipboard:   clipboard,
		confirmer:   confirmer,
		metrics:     m,
		logger:      log.Named("InteractionUsecase"),
		shareBase:   strings.TrimRight(shareBase, "/"),
		countryCode: countryCode,
	}
}

// Actions computes the affordance set for a viewer. Contact and share
// actions are open to everyone; delete requires the context to opt in
// AND the viewer to own the listing.
func (uc *InteractionUsecase) Actions(listing *domain.Listing, viewerEmail string, showDeleteButton bool) ActionSet {
	return ActionSet{
		CanChat:     true,
		CanWhatsApp: listing.PhoneNumber != "",
		CanShare:    true,
		CanWishlist: viewerEmail != "",
		CanDelete:   listing.CanDelete(viewerEmail, showDeleteButton),
	}
}

// StartChat hands a chat initiation off to the chat delegate. The
// contract ends at accepted-for-delivery.
func (uc *InteractionUsecase) StartChat(ctx context.Context, listing *domain.Listing, buyerEmail string) error {
	err := uc.events.Publish(ctx, subjectChatStart, map[string]string{
		"listing_id":   listing.ID,
		"seller_email": listing.SellerEmail,
		"buyer_email":  buyerEmail,
	})
	if err != nil {
		return &domain.DelegateError{Delegate: "chat", Err: err}
	}
	uc.metrics.ChatHandoffsTotal.Inc()
	uc.logger.Info("Chat hand-off published", zap.String("listing_id", listing.ID))
	return nil
}

// WhatsAppLink builds the wa.me deep link for the listing's seller,
// normalizing the stored phone number to international digits and
// pre-filling the interest message. The number is never validated; a
// phone that normalizes to nothing still yields a link.
func (uc *InteractionUsecase) WhatsAppLink(listing *domain.Listing) string {
	phone := normalizePhone(listing.PhoneNumber, uc.countryCode)
	message := "Hi, I'm interested in: " + listing.Title
	return "https://wa.me/" + phone + "?text=" + escapeURIComponent(message)
}

// Share attempts the native share capability first, falling back to the
// clipboard when the platform has none. A user abort stays silent; only
// the clipboard path produces a toast.
func (uc *InteractionUsecase) Share(ctx context.Context, listing *domain.Listing, currency *domain.Currency) ShareResult {
	if currency == nil {
		currency = &domain.DefaultCurrency
	}
	payload := SharePayload{
		Title: "Bazaar: " + listing.Title,
		Text: fmt.Sprintf("🔥 Check out this %s on Bazaar Marketplace!\n💰 Price: %s%s",
			listing.Title, currency.Symbol, formatThousands(listing.ConvertedPrice(currency))),
		URL: uc.shareBase + "/listing/" + listing.ID,
	}

	if uc.gateway != nil && uc.gateway.Available() {
		err := uc.gateway.Share(ctx, payload)
		switch {
		case err == nil:
			uc.metrics.SharesTotal.WithLabelValues(string(ShareOutcomeNative)).Inc()
			return ShareResult{Outcome: ShareOutcomeNative}
		case errors.Is(err, ErrShareAborted):
			uc.metrics.SharesTotal.WithLabelValues(string(ShareOutcomeAborted)).Inc()
			return ShareResult{Outcome: ShareOutcomeAborted}
		default:
			uc.logger.Warn("Native share failed", zap.String("listing_id", listing.ID), zap.Error(err))
			uc.metrics.SharesTotal.WithLabelValues(string(ShareOutcomeFailed)).Inc()
			return ShareResult{Outcome: ShareOutcomeFailed}
		}
	}

	if err := uc.clipboard.WriteText(ctx, payload.URL); err != nil {
		uc.logger.Warn("Clipboard copy failed", zap.String("listing_id", listing.ID), zap.Error(err))
		uc.metrics.SharesTotal.WithLabelValues(string(ShareOutcomeFailed)).Inc()
		return ShareResult{Outcome: ShareOutcomeFailed, Toast: "Copy failed."}
	}
	uc.metrics.SharesTotal.WithLabelValues(string(ShareOutcomeCopied)).Inc()
	return ShareResult{Outcome: ShareOutcomeCopied, Toast: "Ad link copied!"}
}

// ToggleWishlist flips the listing's wishlist membership for the user
// and notifies the wishlist delegate.
func (uc *InteractionUsecase) ToggleWishlist(ctx context.Context, userEmail, listingID string) (bool, error) {
	if err := uc.wishlist.Toggle(ctx, userEmail, listingID); err != nil {
		return false, &domain.DelegateError{Delegate: "wishlist", Err: err}
	}
	wishlisted, err := uc.wishlist.IsWishlisted(ctx, userEmail, listingID)
	if err != nil {
		return false, &domain.DelegateError{Delegate: "wishlist", Err: err}
	}

	uc.metrics.WishlistTogglesTotal.Inc()
	if pubErr := uc.events.Publish(ctx, subjectWishlistToggled, map[string]interface{}{
		"listing_id": listingID,
		"user_email": userEmail,
		"wishlisted": wishlisted,
	}); pubErr != nil {
		uc.logger.Warn("Wishlist event publish failed", zap.String("listing_id", listingID), zap.Error(pubErr))
	}
	return wishlisted, nil
}

// RequestDelete runs the delete flow: affordance check, explicit user
// confirmation, then the owner-checked delete itself. Returns false
// with a nil error when the user declined the confirmation.
func (uc *InteractionUsecase) RequestDelete(ctx context.Context, listing *domain.Listing, viewerEmail string, showDeleteButton bool) (bool, error) {
	if !listing.CanDelete(viewerEmail, showDeleteButton) {
		return false, domain.ErrForbidden
	}
	if !uc.confirmer.Confirm(ctx, deleteConfirmMessage) {
		uc.logger.Info("Delete declined at confirmation", zap.String("listing_id", listing.ID))
		return false, nil
	}
	if err := uc.listings.DeleteListing(ctx, listing.ID, viewerEmail); err != nil {
		return false, err
	}
	return true, nil
}

// normalizePhone strips every non-digit character and replaces a single
// leading zero with the configured country code, so "01012345678" under
// code "20" becomes "201012345678".
func normalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	return digits
}

// escapeURIComponent percent-encodes a query value with %20 for spaces
// instead of Go's form-style "+". A few characters such as ' and ! get
// percent-encoded where JavaScript would leave them literal; both forms
// decode to the same text.
func escapeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// formatThousands renders a whole amount with comma group separators.
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
