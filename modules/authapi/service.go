package authapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/googleauth"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Service exposes the authentication registry and session holder over HTTP.
// Every authentication endpoint answers with the normalized auth.Result; the
// HTTP layer only maps success to a status code and never sees raw errors.
type Service struct {
	registry *auth.Registry
	sessions *session.Manager
	google   *googleauth.Flow
	logger   *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the HTTP surface over the given registry, session
// manager and Google flow.
func NewService(registry *auth.Registry, sessions *session.Manager, google *googleauth.Flow, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		sessions: sessions,
		google:   google,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router mounts the authentication endpoints.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.withSessionUser)

	r.Post("/login", s.handleLogin)
	r.Post("/oauth/{provider}", s.handleOAuth)
	r.Get("/oauth/google/url", s.handleGoogleAuthURL)
	r.Get("/methods", s.handleMethods)
	r.Get("/session", s.handleSession)
	r.Post("/logout", s.handleLogout)

	return r
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.PasswordCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		// Dispatch rejects the empty credentials with the validation message.
		creds = auth.PasswordCredentials{}
	}

	result := s.registry.Dispatch(r.Context(), auth.MethodPassword, creds)
	s.finishAuth(w, r, result)
}

func (s *Service) handleOAuth(w http.ResponseWriter, r *http.Request) {
	var creds auth.OAuthCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		creds = auth.OAuthCredentials{}
	}
	// The URL segment is authoritative for the provider.
	creds.Provider = chi.URLParam(r, "provider")

	result := s.registry.Dispatch(r.Context(), auth.MethodOAuth, creds)
	s.finishAuth(w, r, result)
}

func (s *Service) handleGoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		http.NotFound(w, r)
		return
	}

	authURL, err := s.google.AuthURL(r.URL.Query().Get("state"))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to build google auth url",
			logger.Error(err),
			logger.Component("authapi"),
		)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"url": authURL})
}

func (s *Service) handleMethods(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.Enabled())
}

func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	if user == nil {
		s.writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}
	_, token, _ := s.sessions.Current()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user,
		"token":         token,
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "logout failed",
			logger.Error(err),
			logger.Component("authapi"),
		)
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// withSessionUser injects the current session identity into the request
// context so handlers read it without reaching back into the manager.
func (s *Service) withSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, _, ok := s.sessions.Current(); ok {
			r = r.WithContext(auth.SetUserToContext(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// finishAuth stores a successful identity in the session holder and writes
// the result. A session persistence failure does not fail the authentication
// itself; it is logged and the result returned as-is.
func (s *Service) finishAuth(w http.ResponseWriter, r *http.Request, result auth.Result) {
	if result.Success && result.User != nil {
		if err := s.sessions.Login(r.Context(), result.User, result.Token); err != nil {
			s.logger.ErrorContext(r.Context(), "failed to persist session",
				logger.Error(err),
				logger.UserID(result.User.ID),
				logger.Component("authapi"),
			)
		}
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnauthorized
	}
	s.writeJSON(w, status, result)
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", logger.Error(err), logger.Component("authapi"))
	}
}
