package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

type strategyBase struct {
	logger *slog.Logger
}

// StrategyOption configures a built-in strategy during construction.
type StrategyOption func(*strategyBase)

// WithLogger sets a custom logger for the strategy. Strategies log to a
// discard handler by default.
func WithLogger(l *slog.Logger) StrategyOption {
	return func(b *strategyBase) {
		if l != nil {
			b.logger = l
		}
	}
}

func newStrategyBase(opts []StrategyOption) strategyBase {
	b := strategyBase{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

var _ Strategy = (*passwordStrategy)(nil)

type passwordStrategy struct {
	strategyBase
	exchanger CredentialExchanger
}

// NewPasswordStrategy creates the password authentication strategy. It
// validates input locally and delegates the credential check to the external
// auth server through the exchanger.
func NewPasswordStrategy(exchanger CredentialExchanger, opts ...StrategyOption) Strategy {
	return &passwordStrategy{
		strategyBase: newStrategyBase(opts),
		exchanger:    exchanger,
	}
}

// Authenticate verifies the credentials against the external auth server.
// Empty fields fail before any network call.
func (s *passwordStrategy) Authenticate(ctx context.Context, creds Credentials) Result {
	pc, ok := creds.(PasswordCredentials)
	if !ok || pc.Username == "" || pc.Password == "" {
		return Result{Message: msgMissingCredentials}
	}

	resp, err := s.exchanger.Login(ctx, pc)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = fmt.Sprintf(msgLoginFailedFmt, se.Status)
			}
			return Result{Message: msg}
		}

		s.logger.ErrorContext(ctx, "login exchange failed",
			logger.Error(err),
			logger.Component("password"),
		)
		return Result{Message: msgServerUnreachable}
	}

	res := Result{
		Success: true,
		Message: msgLoginSuccess,
		Token:   resp.Token,
		User:    resp.User,
	}

	// Compatibility shim: some deployments answer with a bare success status
	// and no structured body. Synthesize an identity so the session layer has
	// something to hold; this is not an authentication decision.
	if res.User == nil {
		res.User = &User{
			ID:       "user-" + uuid.NewString(),
			Username: pc.Username,
			Email:    pc.Username + "@example.com",
		}
	}
	if res.Token == "" {
		res.Token = "token-" + uuid.NewString()
	}

	return res
}
