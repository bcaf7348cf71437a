package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Register(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(session.AuthResult{Status: session.AuthStatusSuccess})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	result, err := client.Register(context.Background(), "ann@example.com", "secret1", "Ann")

	require.NoError(t, err)
	assert.Equal(t, session.AuthStatusSuccess, result.Status)
	assert.Equal(t, "/register", gotPath)
	assert.Equal(t, "ann@example.com", gotBody["email"])
	assert.Equal(t, "secret1", gotBody["password"])
	assert.Equal(t, "Ann", gotBody["displayName"])
}

func TestClient_AuthenticatePassesRememberFlag(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(session.AuthResult{
			Status: session.AuthStatusSuccess,
			User:   &session.AuthUser{Email: "ann@example.com", DisplayName: "Annie"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	result, err := client.Authenticate(context.Background(), "ann@example.com", "secret1", true)

	require.NoError(t, err)
	assert.Equal(t, true, gotBody["rememberSession"])
	require.NotNil(t, result.User)
	assert.Equal(t, "Annie", result.User.DisplayName)
}

func TestClient_BusinessFailureInEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Business failures arrive in the envelope even on HTTP 200.
		json.NewEncoder(w).Encode(session.AuthResult{
			Status:  session.AuthStatusFailure,
			Message: "Email already registered",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	result, err := client.Register(context.Background(), "ann@example.com", "secret1", "Ann")

	require.NoError(t, err)
	assert.Equal(t, session.AuthStatusFailure, result.Status)
	assert.Equal(t, "Email already registered", result.Message)
}

func TestClient_UnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", logger.NewNop())
	_, err := client.Authenticate(context.Background(), "ann@example.com", "secret1", false)
	assert.Error(t, err)
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	_, err := client.Register(context.Background(), "ann@example.com", "secret1", "Ann")
	assert.Error(t, err)
}
