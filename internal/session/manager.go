package session

import (
	"log/slog"
	"sync"

	"shopfront/pkg/domain"
)

// Manager owns the in-memory session and is the sole writer of the
// persisted store. The in-memory pair and the persisted pair move
// together: both set on login, both cleared on logout.
type Manager struct {
	mu    sync.Mutex
	store Store
	token string
	user  domain.User
}

// NewManager hydrates the session from the persisted store once. If
// either entry is missing or malformed the session starts logged out
// and a malformed pair is cleared, so a half-written store can never
// produce a half-populated session.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}
	token, user, ok, err := store.Load()
	if err != nil {
		slog.Warn("discarding malformed persisted session", "err", err)
		if cerr := store.Clear(); cerr != nil {
			slog.Warn("clear persisted session failed", "err", cerr)
		}
		return m
	}
	if !ok {
		return m
	}
	m.token = token
	m.user = user
	return m
}

// Login stores the token and user atomically in memory and in the
// persisted store. Credentials are assumed already validated by the
// backend; a store write failure keeps the in-memory session valid.
func (m *Manager) Login(token string, user domain.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	if err := m.store.Save(token, user); err != nil {
		slog.Warn("persist session failed", "err", err)
	}
	m.mu.Unlock()
}

// Logout clears the session from memory and the persisted store, then
// runs the optional navigation callback. Idempotent: logging out while
// logged out is a no-op on state.
func (m *Manager) Logout(after func()) {
	m.mu.Lock()
	m.token = ""
	m.user = domain.User{}
	if err := m.store.Clear(); err != nil {
		slog.Warn("clear persisted session failed", "err", err)
	}
	m.mu.Unlock()
	if after != nil {
		after()
	}
}

// Current returns the session identity; ok is false when logged out.
func (m *Manager) Current() (string, domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", domain.User{}, false
	}
	return m.token, m.user, true
}

// Token returns the bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}
