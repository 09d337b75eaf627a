package http

import (
	"context"
	"net/http"
)

// TokenSource supplies a bearer token for outbound requests. Implementations
// may refresh the token lazily; the transport asks on every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken attaches a static bearer token to every request.
func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			token:     token,
			transport: rt,
		}
	})
}

type tokenSourceTransport struct {
	source    TokenSource
	transport http.RoundTripper
}

func (t *tokenSourceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.source.Token(req.Context())
	if err != nil {
		return nil, err
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", "Bearer "+token)

	return t.transport.RoundTrip(reqCopy)
}

// WithTokenSource attaches a bearer token obtained from the source on each
// request. Used for credentials that expire and are refreshed behind a cache.
func WithTokenSource(source TokenSource) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &tokenSourceTransport{
			source:    source,
			transport: rt,
		}
	})
}
