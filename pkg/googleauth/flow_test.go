package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	ClientID:     "test-client-id",
	ClientSecret: "test-client-secret",
	RedirectURI:  "http://localhost:3000/api/auth/oauth/google",
}

// newStubProvider runs a fake Google provider. The token handler answers
// with the given status and body; the tokeninfo handler echoes claims.
func newStubProvider(t *testing.T, tokenStatus int, tokenBody any, infoStatus int, infoBody any) (*httptest.Server, *url.Values) {
	t.Helper()

	var tokenForm url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		tokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(tokenStatus)
		_ = json.NewEncoder(w).Encode(tokenBody)
	})
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(infoStatus)
		_ = json.NewEncoder(w).Encode(infoBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenForm
}

func stubFlow(srv *httptest.Server, opts ...Option) *Flow {
	opts = append([]Option{
		WithEndpoints(srv.URL+"/auth", srv.URL+"/token", srv.URL+"/tokeninfo"),
	}, opts...)
	return NewFlow(testConfig, opts...)
}

func TestFlow_AuthURL(t *testing.T) {
	t.Parallel()

	t.Run("builds consent url with fixed parameters", func(t *testing.T) {
		t.Parallel()

		f := NewFlow(testConfig)
		raw, err := f.AuthURL("opaque-state")
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "accounts.google.com", u.Host)
		assert.Equal(t, "/o/oauth2/v2/auth", u.Path)

		q := u.Query()
		assert.Equal(t, testConfig.ClientID, q.Get("client_id"))
		assert.Equal(t, testConfig.RedirectURI, q.Get("redirect_uri"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "openid email profile", q.Get("scope"))
		assert.Equal(t, "offline", q.Get("access_type"))
		assert.Equal(t, "consent", q.Get("prompt"))
		assert.Equal(t, "opaque-state", q.Get("state"))
	})

	t.Run("omits empty state", func(t *testing.T) {
		t.Parallel()

		f := NewFlow(testConfig)
		raw, err := f.AuthURL("")
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.False(t, u.Query().Has("state"))
	})

	t.Run("fails without client credentials", func(t *testing.T) {
		t.Parallel()

		f := NewFlow(Config{RedirectURI: "http://localhost/cb"})
		_, err := f.AuthURL("s")
		assert.ErrorIs(t, err, ErrMissingConfig)
	})
}

func TestFlow_ExchangeCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("exchanges code for tokens", func(t *testing.T) {
		t.Parallel()

		srv, form := newStubProvider(t, http.StatusOK, map[string]any{
			"access_token":  "A",
			"id_token":      "B",
			"refresh_token": "R",
			"token_type":    "Bearer",
		}, http.StatusOK, nil)

		f := stubFlow(srv)
		tokens, err := f.ExchangeCode(ctx, "valid-code")
		require.NoError(t, err)

		assert.Equal(t, "A", tokens.AccessToken)
		assert.Equal(t, "B", tokens.IDToken)
		assert.Equal(t, "R", tokens.RefreshToken)

		// The exchange is one form-encoded POST carrying the client credentials.
		assert.Equal(t, "authorization_code", form.Get("grant_type"))
		assert.Equal(t, "valid-code", form.Get("code"))
		assert.Equal(t, testConfig.ClientID, form.Get("client_id"))
		assert.Equal(t, testConfig.ClientSecret, form.Get("client_secret"))
		assert.Equal(t, testConfig.RedirectURI, form.Get("redirect_uri"))
	})

	t.Run("preserves provider error code and description", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Code was already redeemed.",
		}, http.StatusOK, nil)

		f := stubFlow(srv)
		_, err := f.ExchangeCode(ctx, "used-code")

		var ee *ExchangeError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "invalid_grant", ee.Code)
		assert.Equal(t, "Code was already redeemed.", ee.Description)
	})

	t.Run("fills default code when provider omits one", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusBadRequest, map[string]any{}, http.StatusOK, nil)

		f := stubFlow(srv)
		_, err := f.ExchangeCode(ctx, "bad-code")

		var ee *ExchangeError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "TOKEN_EXCHANGE_FAILED", ee.Code)
	})

	t.Run("fails without client credentials before any network call", func(t *testing.T) {
		t.Parallel()

		f := NewFlow(Config{})
		_, err := f.ExchangeCode(ctx, "code")
		assert.ErrorIs(t, err, ErrMissingConfig)
	})
}

func TestFlow_VerifyIDToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	claims := func(overrides map[string]any) map[string]any {
		m := map[string]any{
			"iss":            "https://accounts.google.com",
			"sub":            "123",
			"aud":            testConfig.ClientID,
			"exp":            now.Unix() + 3600,
			"iat":            now.Unix() - 10,
			"email":          "a@x.com",
			"email_verified": true,
			"name":           "Alice",
		}
		for k, v := range overrides {
			m[k] = v
		}
		return m
	}

	t.Run("accepts valid token", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, nil, http.StatusOK, claims(nil))
		f := stubFlow(srv, WithClock(func() time.Time { return now }))

		info, err := f.VerifyIDToken(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, "123", info.Subject)
		assert.Equal(t, "Alice", info.Name)
		assert.Equal(t, "a@x.com", info.Email)
		assert.True(t, bool(info.EmailVerified))
	})

	t.Run("accepts string-typed claims from the live endpoint", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, nil, http.StatusOK, claims(map[string]any{
			"exp":            fmt.Sprintf("%d", now.Unix()+3600),
			"iat":            fmt.Sprintf("%d", now.Unix()-10),
			"email_verified": "true",
		}))
		f := stubFlow(srv, WithClock(func() time.Time { return now }))

		info, err := f.VerifyIDToken(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, int64(now.Unix()+3600), int64(info.Expiry))
		assert.True(t, bool(info.EmailVerified))
	})

	t.Run("rejects audience mismatch", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, nil, http.StatusOK, claims(map[string]any{
			"aud": "someone-else",
		}))
		f := stubFlow(srv, WithClock(func() time.Time { return now }))

		_, err := f.VerifyIDToken(ctx, "B")
		assert.ErrorIs(t, err, ErrInvalidAudience)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, nil, http.StatusOK, claims(map[string]any{
			"exp": now.Unix() - 10,
		}))
		f := stubFlow(srv, WithClock(func() time.Time { return now }))

		_, err := f.VerifyIDToken(ctx, "B")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("rejects non-success verification response", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, nil, http.StatusBadRequest, map[string]any{
			"error": "invalid_token",
		})
		f := stubFlow(srv)

		_, err := f.VerifyIDToken(ctx, "garbage")
		assert.ErrorIs(t, err, ErrVerification)
	})
}

func TestFlow_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	t.Run("exchanges and verifies end to end", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, map[string]any{
			"access_token": "A",
			"id_token":     "B",
			"token_type":   "Bearer",
		}, http.StatusOK, map[string]any{
			"aud":   testConfig.ClientID,
			"exp":   now.Unix() + 3600,
			"sub":   "123",
			"name":  "Alice",
			"email": "a@x.com",
		})

		f := stubFlow(srv, WithClock(func() time.Time { return now }))
		res := f.Authenticate(ctx, "valid-code")

		require.True(t, res.Success)
		assert.Equal(t, "Google認証に成功しました", res.Message)
		assert.Equal(t, "A", res.Token)
		require.NotNil(t, res.User)
		assert.Equal(t, "123", res.User.ID)
		assert.Equal(t, "Alice", res.User.Username)
		assert.Equal(t, "a@x.com", res.User.Email)
	})

	t.Run("expired token yields failure result, not an error", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusOK, map[string]any{
			"access_token": "A",
			"id_token":     "B",
			"token_type":   "Bearer",
		}, http.StatusOK, map[string]any{
			"aud": testConfig.ClientID,
			"exp": now.Unix() - 10,
			"sub": "123",
		})

		f := stubFlow(srv, WithClock(func() time.Time { return now }))
		res := f.Authenticate(ctx, "valid-code")

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "Google認証エラー")
		assert.Contains(t, res.Message, "expired")
		assert.Empty(t, res.Token)
		assert.Nil(t, res.User)
	})

	t.Run("exchange rejection carries provider description", func(t *testing.T) {
		t.Parallel()

		srv, _ := newStubProvider(t, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Malformed auth code.",
		}, http.StatusOK, nil)

		f := stubFlow(srv)
		res := f.Authenticate(ctx, "bad-code")

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "Google認証エラー")
		assert.Contains(t, res.Message, "Malformed auth code.")
	})

	t.Run("missing configuration yields failure result", func(t *testing.T) {
		t.Parallel()

		f := NewFlow(Config{})
		res := f.Authenticate(ctx, "code")

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "Google認証エラー")
	})

	t.Run("unreachable provider yields unexpected-error message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		f := NewFlow(testConfig, WithEndpoints(srv.URL+"/auth", srv.URL+"/token", srv.URL+"/tokeninfo"))
		res := f.Authenticate(ctx, "code")

		assert.False(t, res.Success)
		assert.Equal(t, "Google認証で予期しないエラーが発生しました", res.Message)
	})
}
