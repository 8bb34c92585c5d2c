// Package session holds the tab-lifetime authentication state of the
// console: one Manager per process, explicitly constructed and initialised
// so tests can build isolated sessions.
package session

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// State is the gate's view of the session.
type State string

const (
	// StateLoading holds until Initialize has read persisted storage.
	// Protected routes block rather than redirect while loading, so a
	// refresh never flashes the login screen.
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Manager coordinates the session store, the sign-in call, and the state the
// routing gate consults. Storage stays the single source of truth: Manager
// only caches what the store holds.
type Manager struct {
	store ports.SessionStore
	auth  ports.AuthAPI
	log   zerolog.Logger

	mu       sync.RWMutex
	state    State
	onChange func(State)
}

func NewManager(store ports.SessionStore, auth ports.AuthAPI, log zerolog.Logger) *Manager {
	return &Manager{store: store, auth: auth, log: log, state: StateLoading}
}

// OnChange registers a callback fired after every state transition. Must be
// set before Initialize.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Initialize reads persisted storage once and leaves the loading state.
// Calling it again re-reads storage, which is harmless.
func (m *Manager) Initialize() {
	next := StateUnauthenticated
	if _, ok := m.store.Token(); ok {
		next = StateAuthenticated
	}
	m.transition(next)
	m.log.Debug().Str("state", string(next)).Msg("session initialised")
}

// Login exchanges credentials for a session, persists it, and transitions to
// authenticated. The error is always an *domain.AuthError on failure and the
// state is left unauthenticated.
func (m *Manager) Login(ctx context.Context, username, password string) (*domain.Usuario, error) {
	sess, err := m.auth.SignIn(ctx, ports.Credentials{Username: username, Password: password})
	if err != nil {
		m.log.Warn().Err(err).Str("username", username).Msg("login rejected")
		m.transition(StateUnauthenticated)
		return nil, err
	}
	if err := m.store.Save(*sess); err != nil {
		m.transition(StateUnauthenticated)
		return nil, &domain.AuthError{Message: "could not persist session", Err: err}
	}
	m.transition(StateAuthenticated)
	m.log.Info().Str("username", sess.User.Username).Msg("session established")
	return &sess.User, nil
}

// Logout clears the persisted session unconditionally. It never fails.
func (m *Manager) Logout() {
	m.store.Clear()
	m.transition(StateUnauthenticated)
	m.log.Info().Msg("session closed")
}

// Invalidate is the 401/403 teardown path, wired as the rest client's
// auth-failure hook. Idempotent: repeated calls settle on unauthenticated.
func (m *Manager) Invalidate() {
	m.store.Clear()
	m.transition(StateUnauthenticated)
	m.log.Warn().Msg("session invalidated by backend")
}

// State returns the current gate state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated is true iff a token is present in storage. Token expiry is
// not validated here; an expired token surfaces as a 401 on the next call,
// which tears the session down.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.store.Token()
	return ok
}

// Token exposes the persisted token for the rest client's token provider.
func (m *Manager) Token() (string, bool) {
	return m.store.Token()
}

// CurrentUser returns the persisted user record, false when absent or
// malformed.
func (m *Manager) CurrentUser() (*domain.Usuario, bool) {
	return m.store.CurrentUser()
}

// Claims peeks at the token's JWT claims without verifying the signature:
// the console has no key material, and the backend re-validates every call.
// Used only for display.
func (m *Manager) Claims() (jwt.MapClaims, bool) {
	token, ok := m.store.Token()
	if !ok {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func (m *Manager) transition(next State) {
	m.mu.Lock()
	changed := m.state != next
	m.state = next
	fn := m.onChange
	m.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
}
