package session

import (
	"strings"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
)

// Mode selects which form the session manager is presenting.
type Mode string

const (
	ModeSignup Mode = "signup"
	ModeLogin  Mode = "login"
)

// Credentials is the tagged union of the two authentication variants.
// Each variant validates its own fields exhaustively, so a listing of
// required checks can never silently drift between modes.
type Credentials interface {
	// Validate returns a field-identified ValidationError for the first
	// violated precondition, or nil. It never contacts the identity
	// service.
	Validate() *domain.ValidationError
}

// SignupCredentials is the signup variant: a display name is required.
type SignupCredentials struct {
	Name     string
	Email    string
	Password string
}

func (c SignupCredentials) Validate() *domain.ValidationError {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "Username is required")
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return domain.NewValidationError("email", "Valid email is required")
	}
	if len(c.Password) < 6 {
		return domain.NewValidationError("password", "Password must be 6+ characters")
	}
	return nil
}

// LoginCredentials is the login variant: no name, but a session
// persistence preference.
type LoginCredentials struct {
	Email    string
	Password string
	Remember bool
}

func (c LoginCredentials) Validate() *domain.ValidationError {
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return domain.NewValidationError("email", "Valid email is required")
	}
	if len(c.Password) < 6 {
		return domain.NewValidationError("password", "Password must be 6+ characters")
	}
	return nil
}
