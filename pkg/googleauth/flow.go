package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Fixed Google provider endpoints.
const (
	authEndpoint      = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint     = "https://oauth2.googleapis.com/token"
	tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"
)

const (
	msgSuccess    = "Google認証に成功しました"
	msgErrorFmt   = "Google認証エラー: %s"
	msgUnexpected = "Google認証で予期しないエラーが発生しました"
)

// Tokens is the result of exchanging an authorization code.
type Tokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// Flow drives the Google authorization-code flow: building the consent URL,
// exchanging codes for tokens and verifying identity tokens. Each operation
// is independent and stateless beyond the configuration; no retries are
// performed and a consumed code is never reused.
type Flow struct {
	cfg          Config
	endpoint     oauth2.Endpoint
	tokenInfoURL string
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Flow during construction.
type Option func(*Flow)

// WithFlowLogger sets a custom logger. The flow logs to a discard handler by
// default.
func WithFlowLogger(l *slog.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Flow) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithEndpoints overrides the provider endpoints. Intended for tests that
// stub the provider with a local server.
func WithEndpoints(authURL, tokenURL, tokenInfoURL string) Option {
	return func(f *Flow) {
		f.endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams}
		f.tokenInfoURL = tokenInfoURL
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFlow creates a flow for the given configuration. Construction never
// fails: required configuration is re-checked on every operation so a missing
// client id or secret surfaces as ErrMissingConfig at call time, before any
// network I/O.
func NewFlow(cfg Config, opts ...Option) *Flow {
	f := &Flow{
		cfg: cfg,
		endpoint: oauth2.Endpoint{
			AuthURL:   authEndpoint,
			TokenURL:  tokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		tokenInfoURL: tokenInfoEndpoint,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     f.cfg.ClientID,
		ClientSecret: f.cfg.ClientSecret,
		RedirectURL:  f.cfg.RedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     f.endpoint,
	}
}

// AuthURL returns the Google consent URL. The optional state value is
// threaded through opaquely; generating and validating it is the caller's
// responsibility.
func (f *Flow) AuthURL(state string) (string, error) {
	if err := f.cfg.Validate(); err != nil {
		return "", err
	}
	return f.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// ExchangeCode exchanges an authorization code for tokens at the token
// endpoint. Provider rejections are returned as *ExchangeError with the
// provider's error code and description preserved verbatim.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (Tokens, error) {
	if err := f.cfg.Validate(); err != nil {
		return Tokens{}, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	tok, err := f.oauthConfig().Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			ee := &ExchangeError{Code: re.ErrorCode, Description: re.ErrorDescription}
			if ee.Code == "" {
				ee.Code = "TOKEN_EXCHANGE_FAILED"
			}
			return Tokens{}, ee
		}
		return Tokens{}, fmt.Errorf("googleauth: token exchange: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	return Tokens{
		AccessToken:  tok.AccessToken,
		IDToken:      idToken,
		RefreshToken: tok.RefreshToken,
	}, nil
}

// VerifyIDToken confirms an identity token against the tokeninfo endpoint
// and checks the audience and expiry claims. The three failure kinds are
// distinct: ErrVerification, ErrInvalidAudience and ErrTokenExpired.
func (f *Flow) VerifyIDToken(ctx context.Context, idToken string) (*TokenInfo, error) {
	if err := f.cfg.Validate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.tokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, errors.Join(ErrVerification, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrVerification, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo returned status %d", ErrVerification, resp.StatusCode)
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Join(ErrVerification, err)
	}

	if info.Audience != f.cfg.ClientID {
		return nil, ErrInvalidAudience
	}
	if int64(info.Expiry) <= f.now().Unix() {
		return nil, ErrTokenExpired
	}

	return &info, nil
}

// Authenticate runs the full callback leg: code exchange strictly followed by
// identity-token verification. Every failure terminates in a Result with a
// message describing the failure kind; no error escapes this boundary.
func (f *Flow) Authenticate(ctx context.Context, code string) auth.Result {
	tokens, err := f.ExchangeCode(ctx, code)
	if err != nil {
		return f.failure(ctx, err)
	}

	info, err := f.VerifyIDToken(ctx, tokens.IDToken)
	if err != nil {
		return f.failure(ctx, err)
	}

	return auth.Result{
		Success: true,
		Message: msgSuccess,
		Token:   tokens.AccessToken,
		User: &auth.User{
			ID:       info.Subject,
			Username: info.Name,
			Email:    info.Email,
		},
	}
}

func (f *Flow) failure(ctx context.Context, err error) auth.Result {
	f.logger.ErrorContext(ctx, "google authentication failed",
		logger.Error(err),
		logger.Component("googleauth"),
	)

	var ee *ExchangeError
	switch {
	case errors.As(err, &ee),
		errors.Is(err, ErrMissingConfig),
		errors.Is(err, ErrVerification),
		errors.Is(err, ErrInvalidAudience),
		errors.Is(err, ErrTokenExpired):
		return auth.Result{Message: fmt.Sprintf(msgErrorFmt, err)}
	}
	return auth.Result{Message: msgUnexpected}
}

// Compile-time interface assertion
var _ auth.GoogleAuthenticator = (*Flow)(nil)
