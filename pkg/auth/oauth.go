package auth

import (
	"context"
	"errors"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

var _ Strategy = (*oauthStrategy)(nil)

type oauthStrategy struct {
	strategyBase
	exchanger CredentialExchanger
	google    GoogleAuthenticator
}

// NewOAuthStrategy creates the OAuth authentication strategy. The Google
// callback leg is handled by the flow engine directly; every other provider
// is forwarded to the external auth server through the exchanger.
func NewOAuthStrategy(exchanger CredentialExchanger, google GoogleAuthenticator, opts ...StrategyOption) Strategy {
	return &oauthStrategy{
		strategyBase: newStrategyBase(opts),
		exchanger:    exchanger,
		google:       google,
	}
}

func (s *oauthStrategy) Authenticate(ctx context.Context, creds Credentials) Result {
	oc, ok := creds.(OAuthCredentials)
	if !ok || oc.Provider == "" {
		return Result{Message: msgOAuthError}
	}

	if oc.Provider == ProviderGoogle && oc.Code != "" && s.google != nil {
		return s.google.Authenticate(ctx, oc.Code)
	}

	resp, err := s.exchanger.OAuth(ctx, oc)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = msgOAuthFailed
			}
			return Result{Message: msg}
		}

		s.logger.ErrorContext(ctx, "oauth exchange failed",
			logger.Error(err),
			logger.Component("oauth"),
			logger.Provider(oc.Provider),
		)
		return Result{Message: msgOAuthError}
	}

	return Result{
		Success: true,
		Message: msgOAuthSuccess,
		Token:   resp.Token,
		User:    resp.User,
	}
}
