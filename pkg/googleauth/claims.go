package googleauth

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenInfo holds the decoded identity-token claims returned by the
// tokeninfo endpoint.
type TokenInfo struct {
	Issuer        string    `json:"iss"`
	Subject       string    `json:"sub"`
	Audience      string    `json:"aud"`
	Expiry        unixTime  `json:"exp"`
	IssuedAt      unixTime  `json:"iat"`
	Email         string    `json:"email"`
	EmailVerified looseBool `json:"email_verified"`
	Name          string    `json:"name"`
	Picture       string    `json:"picture"`
	GivenName     string    `json:"given_name"`
	FamilyName    string    `json:"family_name"`
}

// The live tokeninfo endpoint serves numeric and boolean claims as JSON
// strings; decoded tokens and most test doubles use native types. Accept both.

type unixTime int64

func (u *unixTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("googleauth: invalid unix timestamp %q", s)
	}
	*u = unixTime(n)
	return nil
}

type looseBool bool

func (l *looseBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*l = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("googleauth: invalid boolean claim %q", s)
	}
	*l = looseBool(v)
	return nil
}
