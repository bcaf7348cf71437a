package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/middleware"
)

// HandleGetActions returns the affordance set the authenticated viewer
// gets on a listing. The owner_context query parameter marks surfaces
// that opt in to the delete affordance, such as a "my ads" page.
func (h *Handler) HandleGetActions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "GetActions", err)
		return
	}

	viewerEmail, _ := middleware.UserEmailFromContext(r.Context())
	ownerContext := r.URL.Query().Get("owner_context") == "true"
	h.respondJSON(w, http.StatusOK, h.interactions.Actions(listing, viewerEmail, ownerContext))
}

// HandleStartChat hands a chat initiation off to the chat delegate.
func (h *Handler) HandleStartChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "StartChat", err)
		return
	}

	buyerEmail, _ := middleware.UserEmailFromContext(r.Context())
	if err := h.interactions.StartChat(r.Context(), listing, buyerEmail); err != nil {
		h.respondError(w, "StartChat", err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "chat requested"})
}

// HandleWhatsAppLink returns the wa.me deep link for the listing's
// seller.
func (h *Handler) HandleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "WhatsAppLink", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"url": h.interactions.WhatsAppLink(listing)})
}

// HandleShare runs the share flow and reports which path it took plus
// any toast to surface.
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "Share", err)
		return
	}

	currency := displayCurrency(r)
	result := h.interactions.Share(r.Context(), listing, &currency)
	h.respondJSON(w, http.StatusOK, result)
}

// HandleToggleWishlist flips the listing's wishlist membership for the
// authenticated user.
func (h *Handler) HandleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userEmail, _ := middleware.UserEmailFromContext(r.Context())

	wishlisted, err := h.interactions.ToggleWishlist(r.Context(), userEmail, id)
	if err != nil {
		h.respondError(w, "ToggleWishlist", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"wishlisted": wishlisted})
}

// HandleDeleteListing runs the confirm-gated delete flow. The client
// passes confirmed=true once the user has answered the confirmation
// prompt; without it the prompt text is returned and nothing happens.
func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "DeleteListing", err)
		return
	}

	viewerEmail, _ := middleware.UserEmailFromContext(r.Context())
	ctx := withConfirmation(r.Context(), r.URL.Query().Get("confirmed") == "true")

	deleted, err := h.interactions.RequestDelete(ctx, listing, viewerEmail, true)
	if err != nil {
		h.respondError(w, "DeleteListing", err)
		return
	}
	if !deleted {
		h.respondJSON(w, http.StatusConflict, map[string]string{
			"confirm": "Are you sure? This ad will be permanently deleted.",
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
