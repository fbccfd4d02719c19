package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sultan0902/BackendProvider/connectivity"
	"github.com/Sultan0902/BackendProvider/envelope"
	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

var emptyObject = []byte("{}")

type normalizer struct {
	next   http.RoundTripper
	cfg    Config
	logger zerolog.Logger
	prober connectivity.Prober
	codec  *jsonutil.Codec
}

// NormalizeResponses rewrites every response body into an envelope: the body
// is read as a JSON object ({} when it is not one) and code, isSuccess and
// message are set from the HTTP status. Any failure, including an unreadable
// body, is replaced by a *TransportError built with ClassifyFailure.
//
// New installs it by default. Callers of NewWithInterceptors must add it
// themselves when they want envelopes.
func NormalizeResponses(cfg Config, opts ...Option) Interceptor {
	return normalizeResponses(cfg, newOptions(opts...))
}

func normalizeResponses(cfg Config, o options) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return &normalizer{
			next:   next,
			cfg:    cfg.messages(),
			logger: o.logger,
			prober: o.prober,
			codec:  o.codec,
		}
	}
}

func (n *normalizer) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := n.normalize(req)
	if err != nil {
		return nil, n.fail(req, err)
	}

	return resp, nil
}

func (n *normalizer) normalize(req *http.Request) (*http.Response, error) {
	resp, err := n.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return nil, ErrMissingBody
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !n.codec.IsObject(body) {
		body = emptyObject
	}

	n.logger.Info().
		Str("url", req.URL.String()).
		RawJSON("body", body).
		Msg("The response body has been parsed")

	merged, err := n.codec.MergeFields(body,
		jsonutil.Field{Name: envelope.FieldCode, Value: resp.StatusCode},
		jsonutil.Field{Name: envelope.FieldIsSuccess, Value: isSuccessful(resp.StatusCode)},
		jsonutil.Field{Name: envelope.FieldMessage, Value: statusMessage(resp)},
	)
	if err != nil {
		return nil, err
	}

	if resp.Header == nil {
		resp.Header = make(http.Header)
	}

	resp.Body = io.NopCloser(bytes.NewReader(merged))
	resp.ContentLength = int64(len(merged))
	resp.TransferEncoding = nil
	resp.Uncompressed = true
	resp.Header.Del(HeaderContentEncoding)
	resp.Header.Set(HeaderContentLength, strconv.Itoa(len(merged)))

	return resp, nil
}

// readBody drains and closes resp.Body, decoding gzip content. The rewritten
// body is always sent uncompressed.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if !strings.EqualFold(strings.TrimSpace(resp.Header.Get(HeaderContentEncoding)), "gzip") {
		return io.ReadAll(resp.Body)
	}

	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (n *normalizer) fail(req *http.Request, cause error) error {
	reachable := n.prober.Reachable(context.WithoutCancel(req.Context()))
	transportErr := ClassifyFailure(reachable, n.cfg, cause)

	n.logger.Error().
		Err(cause).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Bool("reachable", reachable).
		Msg("The request has failed")

	return transportErr
}

func isSuccessful(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// statusMessage returns the reason phrase of resp, e.g. "OK" for "200 OK".
func statusMessage(resp *http.Response) string {
	if reason, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)); ok {
		if reason = strings.TrimSpace(reason); reason != "" {
			return reason
		}
	}

	return http.StatusText(resp.StatusCode)
}
