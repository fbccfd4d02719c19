// Package envelope holds the normalized response shapes returned by backend
// clients: a status ({code, message, isSuccess}) optionally carrying data.
package envelope

import (
	"net/http"

	"github.com/Sultan0902/BackendProvider/jsonutil"
)

const (
	// DefaultServerCode is used when a decoded payload carries no code and
	// the failure is assumed to be on the server side.
	DefaultServerCode = http.StatusInternalServerError
	// DefaultClientCode is the default for plain status payloads.
	DefaultClientCode = http.StatusBadRequest
)

// Field names injected by the response normalizer.
const (
	FieldCode      = "code"
	FieldIsSuccess = "isSuccess"
	FieldMessage   = "message"
	FieldData      = "data"
)

type Status struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	IsSuccess bool   `json:"isSuccess"`
}

type Envelope[T any] struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	IsSuccess bool   `json:"isSuccess"`
}

func NewStatus(defaultCode int) Status {
	return Status{
		Code:      defaultCode,
		Message:   "",
		IsSuccess: false,
	}
}

func New[T any](defaultCode int) Envelope[T] {
	var zero T

	return Envelope[T]{
		Code:      defaultCode,
		Message:   "",
		Data:      zero,
		IsSuccess: false,
	}
}

func (e Envelope[T]) Status() Status {
	return Status{
		Code:      e.Code,
		Message:   e.Message,
		IsSuccess: e.IsSuccess,
	}
}

// Decode reads an envelope from data. Fields missing from the payload keep
// their defaults, so a payload without "code" reports defaultCode.
func Decode[T any](codec *jsonutil.Codec, data []byte, defaultCode int) (Envelope[T], error) {
	out := New[T](defaultCode)

	if err := codec.Unmarshal(data, &out); err != nil {
		return out, err
	}

	return out, nil
}

func DecodeStatus(codec *jsonutil.Codec, data []byte, defaultCode int) (Status, error) {
	out := NewStatus(defaultCode)

	if err := codec.Unmarshal(data, &out); err != nil {
		return out, err
	}

	return out, nil
}
