package identitytoolkit

// DefaultEndpoint is the Identity Toolkit v1 base URL.
const DefaultEndpoint = "https://identitytoolkit.googleapis.com/v1"

// Config holds identity backend configuration.
type Config struct {
	APIKey string `env:"FIREBASE_API_KEY" yaml:"api_key"`
	// RequestURI is the URI the IdP redirected to. The API only checks it is
	// a valid URL for token-based sign-in.
	RequestURI string `env:"FIREBASE_REQUEST_URI" envDefault:"http://localhost" yaml:"request_uri"`
	Endpoint   string `env:"FIREBASE_ENDPOINT" yaml:"endpoint"`
}
