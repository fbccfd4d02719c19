// Package jsonutil wraps json-iterator with the date handling and object
// rewriting used by backend clients.
package jsonutil

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrParse  = errors.New("jsonutil: failed to parse json")
	ErrEncode = errors.New("jsonutil: failed to encode json")
)

// DefaultDateLayouts is the English "MMMM d, yyyy hh:mm a" format, with and
// without the zero padded hour, full or short month names and either case
// of the AM/PM marker.
var DefaultDateLayouts = []string{
	"January 2, 2006 03:04 PM",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 03:04 pm",
	"January 2, 2006 3:04 pm",
	"Jan 2, 2006 03:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 03:04 pm",
	"Jan 2, 2006 3:04 pm",
}

// Default is a codec reading formatted dates in the local time zone.
var Default = New()

type Codec struct {
	api      jsoniter.API
	location *time.Location
	layouts  []string
}

type Option func(*Codec)

func WithLocation(loc *time.Location) Option {
	return func(c *Codec) {
		if loc != nil {
			c.location = loc
		}
	}
}

func WithDateLayouts(layouts ...string) Option {
	return func(c *Codec) {
		if len(layouts) > 0 {
			c.layouts = layouts
		}
	}
}

func New(opts ...Option) *Codec {
	codec := &Codec{
		api:      nil,
		location: time.Local,
		layouts:  DefaultDateLayouts,
	}

	for _, opt := range opts {
		opt(codec)
	}

	api := jsoniter.Config{ //nolint:exhaustruct
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&dateExtension{codec: codec}) //nolint:exhaustruct

	codec.api = api

	return codec
}

func (c *Codec) Marshal(v any) ([]byte, error) {
	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return data, nil
}

func (c *Codec) Encode(v any) (string, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	if err := c.api.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	return nil
}

func (c *Codec) Valid(data []byte) bool {
	return c.api.Valid(data)
}

func Decode[T any](c *Codec, data []byte) (T, error) { //nolint:ireturn
	var out T
	err := c.Unmarshal(data, &out)

	return out, err
}

func DecodeString[T any](c *Codec, data string) (T, error) { //nolint:ireturn
	return Decode[T](c, []byte(data))
}
