package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.uber.org/zap"
)

// defaultDisplayName is used when the identity service has no stored
// display name for a logging-in user.
const defaultDisplayName = "User"

// AuthStatus is the outcome reported by the identity service.
type AuthStatus string

const (
	AuthStatusSuccess AuthStatus = "success"
	AuthStatusFailure AuthStatus = "failure"
)

// AuthUser is the profile subset the identity service may return.
// DisplayName may be absent.
type AuthUser struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// AuthResult is the identity service's response envelope.
type AuthResult struct {
	Status  AuthStatus `json:"status"`
	User    *AuthUser  `json:"user,omitempty"`
	Message string     `json:"message,omitempty"`
}

// IdentityClient is the narrow interface to the external identity
// service. The service itself (password storage, session expiry) is out
// of scope for this core.
type IdentityClient interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string, rememberSession bool) (*AuthResult, error)
}

// Outcome is a successful authentication: the live identity plus the
// session token minted for it.
type Outcome struct {
	Identity domain.Identity
	Token    string
}

// Service implements the stateless half of the session manager:
// local validation, the identity-service round trip, error mapping, and
// session token minting. The state machine lives in Manager.
type Service struct {
	identity  IdentityClient
	jwtSecret string
	logger    *logger.Logger
}

// NewService creates a session Service.
func NewService(identity IdentityClient, jwtSecret string, log *logger.Logger) *Service {
	return &Service{
		identity:  identity,
		jwtSecret: jwtSecret,
		logger:    log.Named("SessionService"),
	}
}

// Signup registers a new user. Preconditions are checked locally first;
// a ValidationError means the identity service was never contacted. On
// success the returned identity carries the submitted display name.
func (s *Service) Signup(ctx context.Context, creds SignupCredentials) (*Outcome, error) {
	if verr := creds.Validate(); verr != nil {
		s.logger.Debug("Signup rejected locally", zap.String("field", verr.Field))
		return nil, verr
	}

	s.logger.Info("Registering user with identity service", zap.String("email", creds.Email))
	result, err := s.identity.Register(ctx, creds.Email, creds.Password, creds.Name)
	if err != nil {
		s.logger.Error("Identity service unreachable during signup", zap.Error(err))
		return nil, domain.NewAuthError("")
	}
	if result.Status != AuthStatusSuccess {
		s.logger.Warn("Identity service rejected signup", zap.String("email", creds.Email), zap.String("message", result.Message))
		return nil, domain.NewAuthError(result.Message)
	}

	id := domain.Identity{
		Email:       creds.Email,
		DisplayName: creds.Name,
	}
	return s.mint(id)
}

// Login authenticates an existing user. The display name comes from the
// identity service's stored profile, with a generic placeholder when
// absent. RememberSession is passed through untouched; it has no effect
// on validation.
func (s *Service) Login(ctx context.Context, creds LoginCredentials) (*Outcome, error) {
	if verr := creds.Validate(); verr != nil {
		s.logger.Debug("Login rejected locally", zap.String("field", verr.Field))
		return nil, verr
	}

	s.logger.Info("Authenticating user with identity service", zap.String("email", creds.Email))
	result, err := s.identity.Authenticate(ctx, creds.Email, creds.Password, creds.Remember)
	if err != nil {
		s.logger.Error("Identity service unreachable during login", zap.Error(err))
		return nil, domain.NewAuthError("")
	}
	if result.Status != AuthStatusSuccess {
		s.logger.Warn("Identity service rejected login", zap.String("email", creds.Email), zap.String("message", result.Message))
		return nil, domain.NewAuthError(result.Message)
	}

	displayName := defaultDisplayName
	if result.User != nil && result.User.DisplayName != "" {
		displayName = result.User.DisplayName
	}

	id := domain.Identity{
		Email:           creds.Email,
		DisplayName:     displayName,
		RememberSession: creds.Remember,
	}
	return s.mint(id)
}

// mint issues the session JWT for an authenticated identity. Remembered
// sessions live longer; the identity service owns actual expiry of the
// remote session, this token only covers this backend's surface.
func (s *Service) mint(id domain.Identity) (*Outcome, error) {
	ttl := 24 * time.Hour
	if id.RememberSession {
		ttl = 30 * 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"email": id.Email,
		"name":  id.DisplayName,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Authentication succeeded", zap.String("email", id.Email), zap.String("display_name", id.DisplayName))
	return &Outcome{Identity: id, Token: token}, nil
}
