package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/session"
	"go.uber.org/zap"
)

// Client talks to the external identity service over HTTP. The service
// owns password storage and remote-session expiry; this client only
// relays register/authenticate calls and decodes the response envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates an identity-service client.
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: log.Named("IdentityClient"),
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type authenticateRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	RememberSession bool   `json:"rememberSession"`
}

// Register creates a new account with the identity service.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*session.AuthResult, error) {
	return c.post(ctx, "/register", registerRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
}

// Authenticate verifies credentials with the identity service.
// rememberSession is passed through to control remote session
// persistence length.
func (c *Client) Authenticate(ctx context.Context, email, password string, rememberSession bool) (*session.AuthResult, error) {
	return c.post(ctx, "/authenticate", authenticateRequest{
		Email:           email,
		Password:        password,
		RememberSession: rememberSession,
	})
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*session.AuthResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Identity service request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	// The service reports business failures (email taken, bad password)
	// inside the envelope, not via HTTP status codes alone.
	var result session.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("Failed to decode identity service response",
			zap.String("path", path), zap.Int("status_code", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("identity service returned malformed response: %w", err)
	}

	c.logger.Debug("Identity service responded",
		zap.String("path", path),
		zap.String("status", string(result.Status)),
		zap.Int("http_status", resp.StatusCode))
	return &result, nil
}
