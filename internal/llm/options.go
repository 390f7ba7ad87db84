package llm

import (
	"net/http"
	"strings"
)

// Option customizes a provider's transport.
type Option func(*options)

type options struct {
	baseURL string
	client  *http.Client
}

// WithBaseURL points the provider at a different API root, e.g. a proxy or a
// test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

func applyOptions(defaultBaseURL string, opts []Option) options {
	o := options{baseURL: defaultBaseURL, client: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
