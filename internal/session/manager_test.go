package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIdentity lets each test script the identity service directly,
// including blocking mid-call.
type stubIdentity struct {
	registerFn     func(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	authenticateFn func(ctx context.Context, email, password string, remember bool) (*AuthResult, error)

	mu    sync.Mutex
	calls int
}

func (s *stubIdentity) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.registerFn(ctx, email, password, displayName)
}

func (s *stubIdentity) Authenticate(ctx context.Context, email, password string, remember bool) (*AuthResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.authenticateFn(ctx, email, password, remember)
}

func (s *stubIdentity) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func successStub() *stubIdentity {
	return &stubIdentity{
		registerFn: func(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
			return &AuthResult{Status: AuthStatusSuccess}, nil
		},
		authenticateFn: func(ctx context.Context, email, password string, remember bool) (*AuthResult, error) {
			return &AuthResult{Status: AuthStatusSuccess}, nil
		},
	}
}

func newTestManager(stub *stubIdentity, settleDelay time.Duration, onLive func(domain.Identity)) *Manager {
	svc := NewService(stub, testJWTSecret, logger.NewNop())
	return NewManager(svc, settleDelay, onLive, logger.NewNop())
}

func TestManager_InitialState(t *testing.T) {
	m := newTestManager(successStub(), time.Millisecond, nil)

	assert.Equal(t, ModeSignup, m.Mode())
	assert.Equal(t, StateIdle, m.State())
	assert.NoError(t, m.Err())
	assert.False(t, m.Success())
	// Remember-me defaults on.
	assert.True(t, m.Form().Remember)
}

func TestManager_ValidationFailureNeverContactsService(t *testing.T) {
	stub := successStub()
	m := newTestManager(stub, time.Millisecond, nil)

	m.SetEmail("ann@example.com")
	// No name entered in signup mode.
	_, err := m.Submit(context.Background())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, 0, stub.callCount())
}

func TestManager_EditClearsErrorAndLeavesFailed(t *testing.T) {
	m := newTestManager(successStub(), time.Millisecond, nil)

	_, err := m.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, m.State())
	require.Error(t, m.Err())

	m.SetName("Ann")
	assert.Equal(t, StateIdle, m.State())
	assert.NoError(t, m.Err())
}

func TestManager_ToggleModePreservesFormFields(t *testing.T) {
	m := newTestManager(successStub(), time.Millisecond, nil)

	m.SetName("Ann")
	m.SetEmail("ann@example.com")
	m.SetPassword("secret1")

	mode := m.ToggleMode()
	assert.Equal(t, ModeLogin, mode)

	form := m.Form()
	assert.Equal(t, "Ann", form.Name)
	assert.Equal(t, "ann@example.com", form.Email)
	assert.Equal(t, "secret1", form.Password)

	assert.Equal(t, ModeSignup, m.ToggleMode())
}

func TestManager_ToggleModeClearsErrorAndSuccess(t *testing.T) {
	m := newTestManager(successStub(), time.Millisecond, nil)

	_, err := m.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, m.State())

	m.ToggleMode()
	assert.NoError(t, m.Err())
	assert.False(t, m.Success())
	assert.Equal(t, StateIdle, m.State())
}

func TestManager_ConcurrentSubmitRejected(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	stub := successStub()
	stub.registerFn = func(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
		close(entered)
		<-release
		return &AuthResult{Status: AuthStatusSuccess}, nil
	}
	m := newTestManager(stub, time.Millisecond, nil)
	m.SetName("Ann")
	m.SetEmail("ann@example.com")
	m.SetPassword("secret1")

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, StateSubmitting, m.State())

	_, err := m.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAuthInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestManager_SuccessSettlesAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var live *domain.Identity
	settled := make(chan struct{})

	m := newTestManager(successStub(), 20*time.Millisecond, func(id domain.Identity) {
		mu.Lock()
		live = &id
		mu.Unlock()
		close(settled)
	})
	m.SetName("Ann")
	m.SetEmail("ann@example.com")
	m.SetPassword("secret1")

	outcome, err := m.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome)

	// Success is visible immediately, but the identity is not live yet.
	assert.True(t, m.Success())
	assert.NotEqual(t, StateAuthenticated, m.State())
	mu.Lock()
	assert.Nil(t, live)
	mu.Unlock()

	select {
	case <-settled:
	case <-time.After(2 * time.Second):
		t.Fatal("settle callback never fired")
	}

	assert.Equal(t, StateAuthenticated, m.State())
	mu.Lock()
	require.NotNil(t, live)
	assert.Equal(t, "ann@example.com", live.Email)
	assert.Equal(t, "Ann", live.DisplayName)
	mu.Unlock()
}

func TestManager_LoginModeUsesRememberPreference(t *testing.T) {
	var gotRemember bool
	stub := successStub()
	stub.authenticateFn = func(ctx context.Context, email, password string, remember bool) (*AuthResult, error) {
		gotRemember = remember
		return &AuthResult{Status: AuthStatusSuccess}, nil
	}
	m := newTestManager(stub, time.Millisecond, nil)

	m.ToggleMode()
	m.SetEmail("ann@example.com")
	m.SetPassword("secret1")
	m.SetRemember(false)

	_, err := m.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, gotRemember)
}
