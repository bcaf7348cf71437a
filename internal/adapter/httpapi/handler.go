package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/session"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/usecase"
	"go.uber.org/zap"
)

// Handler bundles the HTTP surface's dependencies. Individual endpoint
// groups live in their own files.
type Handler struct {
	sessions     *session.Service
	listings     *usecase.ListingUsecase
	interactions *usecase.InteractionUsecase
	photos       *usecase.PhotoUsecase
	metrics      *metrics.MetricsManager
	logger       *logger.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	sessions *session.Service,
	listings *usecase.ListingUsecase,
	interactions *usecase.InteractionUsecase,
	photos *usecase.PhotoUsecase,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *Handler {
	return &Handler{
		sessions:     sessions,
		listings:     listings,
		interactions: interactions,
		photos:       photos,
		metrics:      m,
		logger:       log.Named("HTTPHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError maps domain errors to HTTP statuses and records the error
// metric under the given method label.
func (h *Handler) respondError(w http.ResponseWriter, method string, err error) {
	var verr *domain.ValidationError
	var aerr *domain.AuthError
	var derr *domain.DelegateError

	status := http.StatusInternalServerError
	body := errorResponse{Error: err.Error()}
	errType := "internal"

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body.Field = verr.Field
		errType = "validation"
	case errors.As(err, &aerr):
		status = http.StatusUnauthorized
		errType = "auth"
	case errors.Is(err, domain.ErrListingNotFound):
		status = http.StatusNotFound
		errType = "not_found"
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		errType = "forbidden"
	case errors.Is(err, domain.ErrPostingLimitExceeded):
		status = http.StatusTooManyRequests
		errType = "posting_limit"
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		errType = "invalid_input"
	case errors.As(err, &derr):
		status = http.StatusBadGateway
		errType = "delegate"
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("method", method), zap.Error(err))
	}
	h.metrics.APIErrorsTotal.WithLabelValues(method, errType).Inc()
	h.respondJSON(w, status, body)
}
