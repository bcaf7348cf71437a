package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type MockIdentityClient struct{ mock.Mock }

func (m *MockIdentityClient) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func (m *MockIdentityClient) Authenticate(ctx context.Context, email, password string, rememberSession bool) (*AuthResult, error) {
	args := m.Called(ctx, email, password, rememberSession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func newTestService(identity IdentityClient) *Service {
	return NewService(identity, testJWTSecret, logger.NewNop())
}

func TestService_SignupValidationHappensBeforeNetwork(t *testing.T) {
	identity := new(MockIdentityClient)
	svc := newTestService(identity)

	cases := []struct {
		name  string
		creds SignupCredentials
		field string
		msg   string
	}{
		{"missing name", SignupCredentials{Name: "  ", Email: "a@b.com", Password: "secret1"}, "name", "Username is required"},
		{"missing email", SignupCredentials{Name: "Ann", Email: "", Password: "secret1"}, "email", "Valid email is required"},
		{"email without at", SignupCredentials{Name: "Ann", Email: "not-an-email", Password: "secret1"}, "email", "Valid email is required"},
		{"short password", SignupCredentials{Name: "Ann", Email: "a@b.com", Password: "12345"}, "password", "Password must be 6+ characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.creds)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, verr.Message)
		})
	}

	// The identity service was never contacted for any of the rejects.
	identity.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SignupCarriesSubmittedName(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Register", mock.Anything, "ann@example.com", "secret1", "Ann").
		Return(&AuthResult{Status: AuthStatusSuccess}, nil)
	svc := newTestService(identity)

	outcome, err := svc.Signup(context.Background(), SignupCredentials{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", outcome.Identity.Email)
	assert.Equal(t, "Ann", outcome.Identity.DisplayName)
	assert.NotEmpty(t, outcome.Token)
	identity.AssertExpectations(t)
}

func TestService_LoginUsesStoredProfileName(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Authenticate", mock.Anything, "ann@example.com", "secret1", false).
		Return(&AuthResult{
			Status: AuthStatusSuccess,
			User:   &AuthUser{Email: "ann@example.com", DisplayName: "Annie"},
		}, nil)
	svc := newTestService(identity)

	outcome, err := svc.Login(context.Background(), LoginCredentials{
		Email: "ann@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Annie", outcome.Identity.DisplayName)
}

func TestService_LoginDefaultsDisplayName(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Authenticate", mock.Anything, "ann@example.com", "secret1", true).
		Return(&AuthResult{Status: AuthStatusSuccess}, nil)
	svc := newTestService(identity)

	outcome, err := svc.Login(context.Background(), LoginCredentials{
		Email: "ann@example.com", Password: "secret1", Remember: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "User", outcome.Identity.DisplayName)
	assert.True(t, outcome.Identity.RememberSession)
}

func TestService_ServiceRejectionBecomesAuthError(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Authenticate", mock.Anything, "ann@example.com", "wrong1", false).
		Return(&AuthResult{Status: AuthStatusFailure, Message: "Invalid credentials"}, nil)
	svc := newTestService(identity)

	_, err := svc.Login(context.Background(), LoginCredentials{Email: "ann@example.com", Password: "wrong1"})
	var aerr *domain.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Invalid credentials", aerr.Error())
}

func TestService_UnreachableServiceUsesGenericMessage(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Authenticate", mock.Anything, "ann@example.com", "secret1", false).
		Return(nil, errors.New("connection refused"))
	svc := newTestService(identity)

	_, err := svc.Login(context.Background(), LoginCredentials{Email: "ann@example.com", Password: "secret1"})
	var aerr *domain.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Authentication failed.", aerr.Error())
}

func TestService_MintedTokenCarriesClaims(t *testing.T) {
	identity := new(MockIdentityClient)
	identity.On("Register", mock.Anything, "ann@example.com", "secret1", "Ann").
		Return(&AuthResult{Status: AuthStatusSuccess}, nil)
	svc := newTestService(identity)

	outcome, err := svc.Signup(context.Background(), SignupCredentials{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(outcome.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "ann@example.com", claims["email"])
	assert.Equal(t, "Ann", claims["name"])
}
