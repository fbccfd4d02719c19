package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Interceptor wraps the next round tripper in the chain. It sees every
// request before the ones after it, and every response after them.
type Interceptor func(next http.RoundTripper) http.RoundTripper

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base so that interceptors[0] is the outermost layer.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper { //nolint:ireturn
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(interceptors) - 1; i >= 0; i-- {
		if interceptors[i] != nil {
			base = interceptors[i](base)
		}
	}

	return base
}

type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
	InvalidateToken()
}

// RequestID sets X-Request-ID on requests that lack one, taking the value
// stored in the request context under key or generating a UUID.
func RequestID(key any) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(HeaderXRequestID) != "" {
				return next.RoundTrip(req)
			}

			req = req.Clone(req.Context())
			req.Header.Set(HeaderXRequestID, requestIDFromContext(req.Context(), key))

			return next.RoundTrip(req)
		})
	}
}

func requestIDFromContext(ctx context.Context, key any) string {
	if key != nil {
		if id, ok := ctx.Value(key).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

// BearerToken authorizes each request with a token from provider. A 401
// response invalidates the token so the next request fetches a new one.
func BearerToken(provider TokenProvider) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token, err := provider.GetToken(req.Context())
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
			}

			req = req.Clone(req.Context())
			req.Header.Set(HeaderAuthorization, "Bearer "+token)

			resp, err := next.RoundTrip(req)
			if err == nil && resp.StatusCode == http.StatusUnauthorized {
				provider.InvalidateToken()
			}

			return resp, err
		})
	}
}
