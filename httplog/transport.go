// Package httplog provides a logging http.RoundTripper whose output grows
// with the configured Verbosity.
package httplog

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const redacted = "██"

type Transport struct {
	next      http.RoundTripper
	logger    zerolog.Logger
	verbosity Verbosity
	redact    map[string]struct{}
}

type Option func(*Transport)

// WithRedactedHeaders replaces the values of the named headers in the log.
func WithRedactedHeaders(names ...string) Option {
	return func(t *Transport) {
		for _, name := range names {
			t.redact[http.CanonicalHeaderKey(name)] = struct{}{}
		}
	}
}

func New(next http.RoundTripper, logger zerolog.Logger, verbosity Verbosity, opts ...Option) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}

	t := &Transport{
		next:      next,
		logger:    logger,
		verbosity: verbosity,
		redact:    make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Middleware returns New as a round tripper decorator.
func Middleware(logger zerolog.Logger, verbosity Verbosity, opts ...Option) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return New(next, logger, verbosity, opts...)
	}
}

func (t *Transport) Verbosity() Verbosity {
	return t.verbosity
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.verbosity <= None {
		return t.next.RoundTrip(req)
	}

	req, err := t.logRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("latency", time.Since(start)).
			Msg("<-- HTTP FAILED")

		return nil, err
	}

	return t.logResponse(req, resp, time.Since(start))
}

func (t *Transport) logRequest(req *http.Request) (*http.Request, error) {
	event := t.logger.Info().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("proto", req.Proto).
		Int64("content_length", req.ContentLength)

	if t.verbosity >= Headers {
		event = event.Dict("headers", t.headerDict(req.Header))
	}

	if t.verbosity >= Body && req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()

		if err != nil {
			return nil, err
		}

		req = req.Clone(req.Context())
		req.Body = io.NopCloser(bytes.NewReader(body))
		event = addBody(event, body)
	}

	event.Msg("--> " + req.Method + " " + req.URL.String())

	return req, nil
}

func (t *Transport) logResponse(req *http.Request, resp *http.Response, latency time.Duration) (*http.Response, error) {
	event := t.logger.Info().
		Int("status", resp.StatusCode).
		Str("url", req.URL.String()).
		Dur("latency", latency).
		Int64("content_length", resp.ContentLength)

	if t.verbosity >= Headers {
		event = event.Dict("headers", t.headerDict(resp.Header))
	}

	if t.verbosity >= Body && resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if err != nil {
			t.logger.Error().
				Err(err).
				Str("url", req.URL.String()).
				Msg("<-- HTTP FAILED")

			return nil, err
		}

		resp.Body = io.NopCloser(bytes.NewReader(body))
		event = addBody(event, body)
	}

	event.Msg("<-- " + resp.Status + " " + req.URL.String())

	return resp, nil
}

func (t *Transport) headerDict(header http.Header) *zerolog.Event {
	dict := zerolog.Dict()

	for name, values := range header {
		value := strings.Join(values, ", ")
		if _, ok := t.redact[http.CanonicalHeaderKey(name)]; ok {
			value = redacted
		}

		dict = dict.Str(name, value)
	}

	return dict
}

func addBody(event *zerolog.Event, body []byte) *zerolog.Event {
	if !utf8.Valid(body) {
		return event.Int("binary_body_bytes", len(body))
	}

	return event.Str("body", string(body))
}
