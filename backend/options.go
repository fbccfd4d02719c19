package backend

import (
	"maps"
	"net/http"
	"time"

	"github.com/Sultan0902/BackendProvider/connectivity"
	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderContentType     = "Content-Type"
	HeaderContentLength   = "Content-Length"
	HeaderContentEncoding = "Content-Encoding"
	HeaderXRequestID      = "X-Request-ID"
	HeaderAuthorization   = "Authorization"
	ContentTypeJSON       = "application/json"
)

// Option supplies collaborators to New, NewWithInterceptors and
// NormalizeResponses.
type Option func(*options)

type options struct {
	logger        zerolog.Logger
	prober        connectivity.Prober
	codec         *jsonutil.Codec
	baseTransport http.RoundTripper
}

func newOptions(opts ...Option) options {
	o := options{
		logger:        log.Logger,
		prober:        connectivity.NewInterfaces(nil),
		codec:         jsonutil.Default,
		baseTransport: nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProber sets how reachability is checked when an exchange fails.
func WithProber(prober connectivity.Prober) Option {
	return func(o *options) {
		if prober != nil {
			o.prober = prober
		}
	}
}

func WithCodec(codec *jsonutil.Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithBaseTransport replaces the timeout-aware transport at the bottom of
// the interceptor chain. The configured timeouts are not applied to it.
func WithBaseTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.baseTransport = transport
	}
}

type RequestOption func(*requestConfig)

type requestConfig struct {
	headers   map[string]string
	query     map[string]string
	timeout   time.Duration
	requestID string
}

func buildRequestConfig(opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		query:     make(map[string]string),
		timeout:   0,
		requestID: "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.headers[key] = value
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = timeout
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(rc *requestConfig) {
		rc.requestID = requestID
	}
}

func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.query[key] = value
	}
}

func WithQueryParams(params map[string]string) RequestOption {
	return func(rc *requestConfig) {
		maps.Copy(rc.query, params)
	}
}
