package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.uber.org/zap"
)

// ErrAuthInFlight is returned when a submit is attempted while another
// authentication attempt is still in flight.
var ErrAuthInFlight = errors.New("authentication already in progress")

// State is the session manager's lifecycle state.
type State string

const (
	StateIdle          State = "idle"
	StateSubmitting    State = "submitting"
	StateAuthenticated State = "authenticated"
	StateFailed        State = "failed"
)

// DefaultSettleDelay is the pause between a successful authentication and
// the identity going live, so the success acknowledgment can be
// perceived. This is a UX contract, not a correctness requirement.
const DefaultSettleDelay = 1500 * time.Millisecond

// Form holds the user-entered credential fields. Entered values survive
// a mode toggle by design.
type Form struct {
	Name     string
	Email    string
	Password string
	Remember bool
}

// Manager owns the authentication state machine:
//
//	idle -> submitting -> {authenticated, failed}
//
// failed returns to idle on the next field edit. At most one
// authentication attempt may be in flight at a time. After a successful
// attempt, the identity goes live (onLive fires, state becomes
// authenticated) only once the settle delay elapses; other operations
// are not blocked while the timer is armed.
type Manager struct {
	svc         *Service
	settleDelay time.Duration
	onLive      func(domain.Identity)
	logger      *logger.Logger

	mu          sync.Mutex
	mode        Mode
	state       State
	form        Form
	lastErr     error
	success     bool
	settleTimer *time.Timer // cancel handle; currently never invoked, kept for extensibility
}

// NewManager creates a Manager starting in signup mode. onLive may be
// nil; it is invoked once per successful attempt, after the settle
// delay, on the timer's goroutine.
func NewManager(svc *Service, settleDelay time.Duration, onLive func(domain.Identity), log *logger.Logger) *Manager {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Manager{
		svc:         svc,
		settleDelay: settleDelay,
		onLive:      onLive,
		logger:      log.Named("SessionManager"),
		mode:        ModeSignup,
		state:       StateIdle,
		form:        Form{Remember: true},
	}
}

// Mode returns the current form mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the current error message, or nil.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Success reports whether the last attempt succeeded and the success
// acknowledgment is still showing or shown.
func (m *Manager) Success() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

// Form returns a snapshot of the entered fields.
func (m *Manager) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// SetName updates the name field. Editing clears the current error and
// returns a failed machine to idle.
func (m *Manager) SetName(v string) { m.edit(func(f *Form) { f.Name = v }) }

// SetEmail updates the email field, clearing any current error.
func (m *Manager) SetEmail(v string) { m.edit(func(f *Form) { f.Email = v }) }

// SetPassword updates the password field, clearing any current error.
func (m *Manager) SetPassword(v string) { m.edit(func(f *Form) { f.Password = v }) }

// SetRemember updates the session persistence preference. It is not an
// error-clearing edit; it only matters to login submission.
func (m *Manager) SetRemember(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Remember = v
}

func (m *Manager) edit(apply func(*Form)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply(&m.form)
	m.lastErr = nil
	if m.state == StateFailed {
		m.state = StateIdle
	}
}

// ToggleMode switches between signup and login intents. It clears any
// existing error and prior success flag but preserves entered
// credentials across the switch.
func (m *Manager) ToggleMode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == ModeSignup {
		m.mode = ModeLogin
	} else {
		m.mode = ModeSignup
	}
	m.lastErr = nil
	m.success = false
	if m.state == StateFailed {
		m.state = StateIdle
	}
	m.logger.Debug("Mode toggled", zap.String("mode", string(m.mode)))
	return m.mode
}

// Submit runs the authentication attempt for the current mode with the
// entered fields. It blocks for the identity-service round trip but NOT
// for the settle delay; the identity goes live via onLive once the timer
// fires. A second Submit while one is in flight returns ErrAuthInFlight.
func (m *Manager) Submit(ctx context.Context) (*Outcome, error) {
	m.mu.Lock()
	if m.state == StateSubmitting {
		m.mu.Unlock()
		m.logger.Warn("Submit rejected: attempt already in flight")
		return nil, ErrAuthInFlight
	}
	m.state = StateSubmitting
	m.lastErr = nil
	mode := m.mode
	form := m.form
	m.mu.Unlock()

	var outcome *Outcome
	var err error
	switch mode {
	case ModeLogin:
		outcome, err = m.svc.Login(ctx, LoginCredentials{
			Email:    form.Email,
			Password: form.Password,
			Remember: form.Remember,
		})
	default:
		outcome, err = m.svc.Signup(ctx, SignupCredentials{
			Name:     form.Name,
			Email:    form.Email,
			Password: form.Password,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateFailed
		m.lastErr = err
		m.success = false
		return nil, err
	}

	m.success = true
	identity := outcome.Identity
	// Arm the settle timer. The handle is retained but never cancelled;
	// its only externally observable effect is the single live callback.
	m.settleTimer = time.AfterFunc(m.settleDelay, func() {
		m.mu.Lock()
		m.state = StateAuthenticated
		m.mu.Unlock()
		if m.onLive != nil {
			m.onLive(identity)
		}
	})
	m.logger.Info("Authentication settled callback armed",
		zap.String("email", identity.Email),
		zap.Duration("settle_delay", m.settleDelay))
	return outcome, nil
}
