package backend

import (
	"errors"
	"fmt"
)

var (
	ErrNoInternet     = errors.New("backend: no internet connection")
	ErrConnectivity   = errors.New("backend: connectivity error")
	ErrInvalidConfig  = errors.New("backend: invalid configuration")
	ErrRequestFailed  = errors.New("backend: request failed")
	ErrServiceError   = errors.New("backend: service error")
	ErrDecodeResponse = errors.New("backend: failed to decode response")
	ErrMissingBody    = errors.New("backend: response has no body")
	ErrAuthFailed     = errors.New("backend: authentication failed")
)

// TransportError is the single error a normalized exchange fails with. Its
// message is chosen only by whether the network was reachable when the
// failure happened; Err keeps the actual cause.
type TransportError struct {
	Message   string
	Reachable bool
	Err       error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	if e.Reachable {
		return target == ErrConnectivity //nolint:errorlint
	}

	return target == ErrNoInternet //nolint:errorlint
}

// ClassifyFailure maps any exchange failure onto one of the two configured
// messages. The classification is deliberately coarse: timeouts, DNS
// failures and unreadable bodies all get the same message for a given
// reachability.
func ClassifyFailure(reachable bool, cfg Config, cause error) *TransportError {
	cfg = cfg.messages()

	message := cfg.NoInternetMessage
	if reachable {
		message = cfg.ConnectivityErrorMessage
	}

	return &TransportError{
		Message:   message,
		Reachable: reachable,
		Err:       cause,
	}
}

func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr, true
	}

	return nil, false
}

type ServiceError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("backend: service returned status %d", e.StatusCode)
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(target, ErrServiceError)
}

func (e *ServiceError) Unwrap() error {
	return ErrServiceError
}

func NewServiceError(statusCode int, message, requestID string) *ServiceError {
	return &ServiceError{
		StatusCode: statusCode,
		Message:    message,
		RequestID:  requestID,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}

	return nil, false
}
