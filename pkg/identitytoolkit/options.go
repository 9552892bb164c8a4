package identitytoolkit

import "net/http"

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for backend requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithEndpoint overrides the API base URL, e.g. for the Auth emulator
// ("http://127.0.0.1:9099/identitytoolkit.googleapis.com/v1").
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) {
		if endpoint != "" {
			cl.endpoint = endpoint
		}
	}
}
