package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Response bodies are small JSON documents; cap reads defensively.
const maxResponseBytes = 1 << 20

// Config holds the external auth server connection settings.
type Config struct {
	BaseURL string        `env:"AUTH_SERVER_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"AUTH_SERVER_TIMEOUT" envDefault:"10s"`
}

// Client performs the raw credential exchange with the external auth server.
// It normalizes responses into auth.ExchangeResponse and returns typed
// failures: *auth.StatusError for non-success statuses and errors wrapping
// auth.ErrConnection for transport failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets a custom logger. The client logs to a discard handler by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a client for the auth server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from environment-sourced configuration.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	c := New(cfg.BaseURL, opts...)
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	return c
}

// Login posts password credentials to the login endpoint.
func (c *Client) Login(ctx context.Context, creds auth.PasswordCredentials) (*auth.ExchangeResponse, error) {
	return c.post(ctx, "/login", creds)
}

// OAuth posts provider-specific credentials to the provider's oauth endpoint.
func (c *Client) OAuth(ctx context.Context, creds auth.OAuthCredentials) (*auth.ExchangeResponse, error) {
	return c.post(ctx, "/oauth/"+url.PathEscape(creds.Provider), creds)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*auth.ExchangeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("authclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("authclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "auth server unreachable",
			logger.Error(err),
			logger.Component("authclient"),
		)
		return nil, errors.Join(auth.ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Join(auth.ErrConnection, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		se := &auth.StatusError{Status: resp.StatusCode}
		var eb struct {
			Message string `json:"message"`
		}
		// A structured error body is optional; fall back to the bare status.
		if json.Unmarshal(raw, &eb) == nil {
			se.Message = eb.Message
		}
		return nil, se
	}

	// Success bodies are arbitrary JSON where token and user are optional;
	// an empty or malformed body is still a success.
	out := &auth.ExchangeResponse{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, out)
	}
	return out, nil
}

// Compile-time interface assertion
var _ auth.CredentialExchanger = (*Client)(nil)
