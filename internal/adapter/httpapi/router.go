package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/middleware"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
)

// NewRouter wires the full HTTP surface. Contact, share, and read
// endpoints are public; everything that writes on behalf of a user sits
// behind the session token.
func NewRouter(h *Handler, jwtSecret string, m *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(latencyMiddleware(m))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Post("/api/auth/signup", h.HandleSignup)
	mux.Post("/api/auth/login", h.HandleLogin)

	mux.Get("/api/currencies", h.HandleListCurrencies)
	mux.Get("/api/listings", h.HandleSearchListings)
	mux.Get("/api/listings/{id}", h.HandleGetListing)
	mux.Get("/api/listings/{id}/whatsapp", h.HandleWhatsAppLink)
	mux.Post("/api/listings/{id}/share", h.HandleShare)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))

		r.Post("/api/listings", h.HandleCreateListing)
		r.Delete("/api/listings/{id}", h.HandleDeleteListing)
		r.Get("/api/listings/{id}/actions", h.HandleGetActions)
		r.Post("/api/listings/{id}/reviews", h.HandleAddReview)
		r.Post("/api/listings/{id}/wishlist", h.HandleToggleWishlist)
		r.Post("/api/listings/{id}/chat", h.HandleStartChat)
		r.Post("/api/listings/{id}/photo", h.HandleAttachPhoto)
	})

	return mux
}

// latencyMiddleware observes request latency per method+route pattern.
func latencyMiddleware(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			m.APILatency.WithLabelValues(r.Method + " " + pattern).Observe(time.Since(start).Seconds())
		})
	}
}
