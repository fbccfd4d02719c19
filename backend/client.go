// Package backend builds HTTP API clients whose responses are normalized
// into envelopes. A Config describes the client; New or NewWithInterceptors
// turn it into a *Client, and Build or BuildWith hand that client to the
// caller's own API implementation.
package backend

import (
	"net/http"

	"github.com/Sultan0902/BackendProvider/httplog"
	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type Client struct {
	config     Config
	resty      *resty.Client
	httpClient *http.Client
	codec      *jsonutil.Codec
	logger     zerolog.Logger
}

// New builds a client whose chain is the verbosity logger followed by the
// response normalizer.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := newOptions(opts...)

	return newClient(cfg, o, []Interceptor{normalizeResponses(cfg, o)})
}

// NewWithInterceptors builds a client whose chain is the verbosity logger
// followed by interceptors. The response normalizer is not part of it.
func NewWithInterceptors(cfg Config, interceptors []Interceptor, opts ...Option) (*Client, error) {
	return newClient(cfg, newOptions(opts...), interceptors)
}

// Build creates a client with New and passes it to factory, which returns
// the caller's API implementation.
func Build[T any](cfg Config, factory func(*Client) T, opts ...Option) (T, error) { //nolint:ireturn
	client, err := New(cfg, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return factory(client), nil
}

// BuildWith is Build over NewWithInterceptors.
func BuildWith[T any]( //nolint:ireturn
	cfg Config,
	interceptors []Interceptor,
	factory func(*Client) T,
	opts ...Option,
) (T, error) {
	client, err := NewWithInterceptors(cfg, interceptors, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return factory(client), nil
}

func newClient(cfg Config, o options, interceptors []Interceptor) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.messages()

	base := o.baseTransport
	if base == nil {
		base = newTransport(cfg)
	}

	chain := make([]Interceptor, 0, len(interceptors)+1)
	chain = append(chain, httplog.Middleware(o.logger, cfg.LogLevel))
	chain = append(chain, interceptors...)

	httpClient := &http.Client{ //nolint:exhaustruct
		Transport: Chain(base, chain...),
	}

	restyClient := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetLogger(restyLogger{logger: o.logger}).
		SetJSONMarshaler(o.codec.Marshal).
		SetJSONUnmarshaler(o.codec.Unmarshal)

	o.logger.Debug().
		Str("base_url", cfg.BaseURL).
		Str("log_level", cfg.LogLevel.String()).
		Dur("connect_timeout", cfg.ConnectTimeout).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Int("interceptors", len(interceptors)).
		Msg("The backend client has been initialized")

	return &Client{
		config:     cfg,
		resty:      restyClient,
		httpClient: httpClient,
		codec:      o.codec,
		logger:     o.logger,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

func (c *Client) Resty() *resty.Client {
	return c.resty
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) Codec() *jsonutil.Codec {
	return c.codec
}

type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
