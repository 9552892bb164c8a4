package oauth

// Option configures a provider request descriptor.
type Option func(*options)

type options struct {
	redirectURI string
}

// WithRedirectURI overrides the redirect URI derived from the app scheme.
// Loopback receivers on desktop use it to point the provider at
// http://127.0.0.1:<port>/callback instead of the custom scheme.
func WithRedirectURI(uri string) Option {
	return func(o *options) {
		o.redirectURI = uri
	}
}
