package client

import "net/http"

type Option func(*HTTPClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithAuthHeader sets the header and scheme used to send the token, e.g.
// ("Authorization", "Bearer") or ("X-Auth-Token", "").
func WithAuthHeader(name, scheme string) Option {
	return func(c *HTTPClient) {
		c.authHeader = name
		c.authScheme = scheme
	}
}

func WithObserver(o Observer) Option {
	return func(c *HTTPClient) { c.observer = o }
}
