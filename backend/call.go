package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/Sultan0902/BackendProvider/envelope"
	"github.com/go-resty/resty/v2"
)

// Call is a lazily executed request whose response body decodes into T.
// Nothing is sent until Execute or Async is called, and a Call may be
// executed more than once.
type Call[T any] struct {
	client  *Client
	method  string
	path    string
	body    any
	opts    []RequestOption
	initial T
}

type Result[T any] struct {
	Value T
	Err   error
}

func Do[T any](c *Client, method, path string, body any, opts ...RequestOption) *Call[T] {
	var zero T

	return &Call[T]{
		client:  c,
		method:  method,
		path:    path,
		body:    body,
		opts:    opts,
		initial: zero,
	}
}

func Get[T any](c *Client, path string, opts ...RequestOption) *Call[T] {
	return Do[T](c, http.MethodGet, path, nil, opts...)
}

func Post[T any](c *Client, path string, body any, opts ...RequestOption) *Call[T] {
	return Do[T](c, http.MethodPost, path, body, opts...)
}

func Put[T any](c *Client, path string, body any, opts ...RequestOption) *Call[T] {
	return Do[T](c, http.MethodPut, path, body, opts...)
}

func Patch[T any](c *Client, path string, body any, opts ...RequestOption) *Call[T] {
	return Do[T](c, http.MethodPatch, path, body, opts...)
}

func Delete[T any](c *Client, path string, opts ...RequestOption) *Call[T] {
	return Do[T](c, http.MethodDelete, path, nil, opts...)
}

// WithDefault decodes the response on top of value, so fields absent from
// the payload keep the values set there, e.g. envelope.New[T](500).
func (call *Call[T]) WithDefault(value T) *Call[T] {
	call.initial = value

	return call
}

// Execute performs the exchange. A failed exchange returns the
// *TransportError produced by the chain unwrapped. A non-2xx status returns
// the decoded value together with a *ServiceError.
func (call *Call[T]) Execute(ctx context.Context) (T, error) { //nolint:ireturn
	out := call.initial

	cfg := buildRequestConfig(call.opts...)

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)

		defer cancel()
	}

	req := call.client.resty.R().
		SetContext(ctx).
		SetHeaders(cfg.headers).
		SetQueryParams(cfg.query)

	if call.body != nil {
		req.SetBody(call.body)
	}

	if cfg.requestID != "" {
		req.SetHeader(HeaderXRequestID, cfg.requestID)
	}

	resp, err := req.Execute(call.method, call.path)
	if err != nil {
		return out, call.client.requestFailure(err)
	}

	if !resp.IsSuccess() {
		_ = call.decode(resp.Body(), &out)

		return out, call.client.serviceError(resp)
	}

	if err := call.decode(resp.Body(), &out); err != nil {
		return out, err
	}

	return out, nil
}

// Async executes the call on its own goroutine. The channel receives exactly
// one Result and is then closed; it is buffered, so the goroutine finishes
// even if nobody receives.
func (call *Call[T]) Async(ctx context.Context) <-chan Result[T] {
	results := make(chan Result[T], 1)

	go func() {
		defer close(results)

		value, err := call.Execute(ctx)
		results <- Result[T]{Value: value, Err: err}
	}()

	return results
}

func (call *Call[T]) decode(body []byte, out *T) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := call.client.codec.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}

func (c *Client) requestFailure(err error) error {
	if transportErr, ok := IsTransportError(err); ok {
		return transportErr
	}

	return fmt.Errorf("%w: %w", ErrRequestFailed, err)
}

func (c *Client) serviceError(resp *resty.Response) error {
	requestID := resp.Header().Get(HeaderXRequestID)
	if requestID == "" && resp.Request != nil {
		requestID = resp.Request.Header.Get(HeaderXRequestID)
	}

	var message string

	status, err := envelope.DecodeStatus(c.codec, resp.Body(), resp.StatusCode())
	if err == nil {
		message = status.Message
	} else {
		message = string(bytes.TrimSpace(resp.Body()))
	}

	return NewServiceError(resp.StatusCode(), message, requestID)
}
