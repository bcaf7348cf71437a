package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/session"
	"go.uber.org/zap"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

type authUser struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// HandleSignup registers a new account and returns the session token.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for Signup", zap.Error(err))
		h.respondError(w, "Signup", domain.ErrInvalidInput)
		return
	}

	outcome, err := h.sessions.Signup(r.Context(), session.SignupCredentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.recordAuthFailure(err)
		h.respondError(w, "Signup", err)
		return
	}

	h.metrics.SignupsTotal.Inc()
	h.respondJSON(w, http.StatusCreated, authResponse{
		Token: outcome.Token,
		User: authUser{
			Email:       outcome.Identity.Email,
			DisplayName: outcome.Identity.DisplayName,
		},
	})
}

// HandleLogin authenticates an existing account and returns the session
// token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for Login", zap.Error(err))
		h.respondError(w, "Login", domain.ErrInvalidInput)
		return
	}

	outcome, err := h.sessions.Login(r.Context(), session.LoginCredentials{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		h.recordAuthFailure(err)
		h.respondError(w, "Login", err)
		return
	}

	h.metrics.LoginsTotal.Inc()
	h.respondJSON(w, http.StatusOK, authResponse{
		Token: outcome.Token,
		User: authUser{
			Email:       outcome.Identity.Email,
			DisplayName: outcome.Identity.DisplayName,
		},
	})
}

func (h *Handler) recordAuthFailure(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.metrics.AuthFailuresTotal.WithLabelValues("validation").Inc()
		return
	}
	h.metrics.AuthFailuresTotal.WithLabelValues("service").Inc()
}
