package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExchanger is a mock implementation of CredentialExchanger.
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) Login(ctx context.Context, creds PasswordCredentials) (*ExchangeResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExchangeResponse), args.Error(1)
}

func (m *MockExchanger) OAuth(ctx context.Context, creds OAuthCredentials) (*ExchangeResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExchangeResponse), args.Error(1)
}

// MockGoogleAuthenticator is a mock implementation of GoogleAuthenticator.
type MockGoogleAuthenticator struct {
	mock.Mock
}

func (m *MockGoogleAuthenticator) Authenticate(ctx context.Context, code string) Result {
	args := m.Called(ctx, code)
	return args.Get(0).(Result)
}
