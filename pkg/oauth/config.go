package oauth

// AppConfig holds the application-wide redirect settings.
type AppConfig struct {
	Scheme       string `env:"AUTHBRIDGE_APP_SCHEME" envDefault:"tryjesus" yaml:"scheme"`
	RedirectPath string `env:"AUTHBRIDGE_REDIRECT_PATH" envDefault:"oauthredirect" yaml:"redirect_path"`
}

// RedirectURI returns the redirect target derived from the app scheme.
func (c AppConfig) RedirectURI() string {
	return RedirectURI(c.Scheme, c.RedirectPath)
}

// GoogleConfig holds Google sign-in configuration.
type GoogleConfig struct {
	ClientID string   `env:"GOOGLE_OAUTH_CLIENT_ID" yaml:"client_id"`
	Scopes   []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," yaml:"scopes"`
}

// FacebookConfig holds Facebook Login configuration.
type FacebookConfig struct {
	AppID  string   `env:"FACEBOOK_APP_ID" yaml:"app_id"`
	Scopes []string `env:"FACEBOOK_OAUTH_SCOPES" envSeparator:"," yaml:"scopes"`
}

// AppleConfig holds Sign in with Apple configuration for the web flow.
// Native prompts ignore ServiceID; the platform supplies the bundle identity.
type AppleConfig struct {
	ServiceID string   `env:"APPLE_SERVICE_ID" yaml:"service_id"`
	Scopes    []string `env:"APPLE_OAUTH_SCOPES" envSeparator:"," yaml:"scopes"`
}
