package googleauth

// Config holds the Google OAuth client configuration. Only the client id,
// secret and redirect URI are configurable; the provider endpoints are fixed.
//
// The required fields are deliberately not tagged `required`: the flow checks
// them itself on every operation so a missing value surfaces as
// ErrMissingConfig before any network call instead of an env parse failure.
type Config struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"GOOGLE_REDIRECT_URI" envDefault:"http://localhost:3000/api/auth/oauth/google"`
}

// Validate reports ErrMissingConfig when a required field is absent.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingConfig
	}
	return nil
}
