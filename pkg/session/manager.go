package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Persisted entries. Both are cleared together on logout.
const (
	userKey  = "auth:user"
	tokenKey = "auth:token"
)

// Manager tracks the current authenticated identity and mirrors it to a
// Store so a later process (or page load) can restore it.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu    sync.RWMutex
	user  *auth.User
	token string
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithLogger sets a custom logger. The manager logs to a discard handler by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login stores the identity, marks the session authenticated and persists
// both entries. The token may be empty.
func (m *Manager) Login(ctx context.Context, user *auth.User, token string) error {
	if user == nil {
		return ErrNilUser
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := m.store.Set(ctx, userKey, string(raw)); err != nil {
		return fmt.Errorf("session: persist user: %w", err)
	}
	if err := m.store.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}

	u := *user
	m.mu.Lock()
	m.user = &u
	m.token = token
	m.mu.Unlock()
	return nil
}

// Logout clears the current state and both persisted entries. It is
// idempotent: logging out twice leaves the same state as once.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, userKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("session: clear user: %w", err)
	}
	if err := m.store.Delete(ctx, tokenKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("session: clear token: %w", err)
	}

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
	return nil
}

// Restore rehydrates the session from the store. Corrupt entries are cleared
// and treated as "no session" rather than propagated; startup must not fail
// on bad local state. The returned bool reports whether a session was
// restored.
func (m *Manager) Restore(ctx context.Context) (*auth.User, string, bool) {
	rawUser, err := m.store.Get(ctx, userKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(ctx, "session store read failed",
				logger.Error(err),
				logger.Component("session"),
			)
		}
		m.reset()
		return nil, "", false
	}

	var user auth.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.ID == "" {
		m.logger.WarnContext(ctx, "clearing corrupt session state",
			logger.Error(err),
			logger.Component("session"),
		)
		if err := m.Logout(ctx); err != nil {
			m.logger.WarnContext(ctx, "failed to clear corrupt session state",
				logger.Error(err),
				logger.Component("session"),
			)
		}
		return nil, "", false
	}

	token, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		// Token is optional; a missing one does not invalidate the identity.
		token = ""
	}

	m.mu.Lock()
	m.user = &user
	m.token = token
	m.mu.Unlock()

	u := user
	return &u, token, true
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() (*auth.User, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, "", false
	}
	u := *m.user
	return &u, m.token, true
}

// IsAuthenticated reports whether an identity is currently held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

func (m *Manager) reset() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
}
