package auth

import (
	"context"
	"sync"
)

// Entry describes a registered authentication method. The strategy is bound
// at registration time and never reassigned afterward; toggling Enabled is
// the only mutation the registry supports.
type Entry struct {
	Type        Method   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Strategy    Strategy `json:"-"`
}

// Registry holds the fixed set of authentication strategies and dispatches
// authentication attempts by method tag. It is an explicit instance rather
// than process-wide state so tests stay hermetic. All operations are safe for
// concurrent use; dispatch and enable/disable are serialized by an RWMutex.
type Registry struct {
	mu      sync.RWMutex
	order   []Method
	entries map[Method]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Method]*Entry)}
}

// NewDefaultRegistry builds the built-in method set: password and oauth,
// both enabled. The exchanger talks to the external auth server; google, if
// non-nil, handles the Google callback leg directly.
func NewDefaultRegistry(exchanger CredentialExchanger, google GoogleAuthenticator, opts ...StrategyOption) *Registry {
	r := NewRegistry()
	// Registration order drives the default UI ordering.
	_ = r.Register(Entry{
		Type:        MethodPassword,
		Name:        namePassword,
		Description: descPassword,
		Enabled:     true,
		Strategy:    NewPasswordStrategy(exchanger, opts...),
	})
	_ = r.Register(Entry{
		Type:        MethodOAuth,
		Name:        nameOAuth,
		Description: descOAuth,
		Enabled:     true,
		Strategy:    NewOAuthStrategy(exchanger, google, opts...),
	})
	return r
}

// Register inserts or replaces the entry for its method tag. Replacing keeps
// the original position in the registration order. The tag must be one of the
// recognized Method constants.
func (r *Registry) Register(e Entry) error {
	switch e.Type {
	case MethodPassword, MethodOAuth:
	default:
		return ErrUnknownMethod
	}
	if e.Strategy == nil {
		return ErrNilStrategy
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.Type]; !exists {
		r.order = append(r.order, e.Type)
	}
	entry := e
	r.entries[e.Type] = &entry
	return nil
}

// SetEnabled toggles a registered method. Toggling an unknown tag is a
// deliberate no-op: disabling a method that never existed is harmless.
func (r *Registry) SetEnabled(t Method, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[t]; ok {
		e.Enabled = enabled
	}
}

// Get returns a copy of the entry for the given tag.
func (r *Registry) Get(t Method) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[t]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Enabled returns the enabled entries in registration order.
func (r *Registry) Enabled() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, t := range r.order {
		if e := r.entries[t]; e.Enabled {
			out = append(out, *e)
		}
	}
	return out
}

// Dispatch routes an authentication attempt to the strategy registered for
// the tag. The guard is two-staged so a disabled method is observably
// different from an unknown one; neither guard path performs any I/O. A
// present, enabled strategy is invoked and its result returned unmodified.
func (r *Registry) Dispatch(ctx context.Context, t Method, creds Credentials) Result {
	r.mu.RLock()
	e, ok := r.entries[t]
	if !ok {
		r.mu.RUnlock()
		return Result{Message: msgUnsupportedMethod}
	}
	enabled, strategy := e.Enabled, e.Strategy
	r.mu.RUnlock()

	if !enabled {
		return Result{Message: msgMethodDisabled}
	}
	return strategy.Authenticate(ctx, creds)
}
