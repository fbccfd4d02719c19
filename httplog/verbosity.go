package httplog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownVerbosity = errors.New("httplog: unknown verbosity")

// Verbosity controls how much of each exchange is logged. Levels are
// ordered, each one includes everything logged by the levels below it.
type Verbosity int

const (
	// None logs nothing.
	None Verbosity = iota
	// Basic logs request and response lines.
	Basic
	// Headers adds request and response headers.
	Headers
	// Body adds request and response bodies.
	Body
)

func (v Verbosity) String() string {
	switch v {
	case None:
		return "NONE"
	case Basic:
		return "BASIC"
	case Headers:
		return "HEADERS"
	case Body:
		return "BODY"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

func (v Verbosity) Valid() bool {
	return v >= None && v <= Body
}

func ParseVerbosity(level string) (Verbosity, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "", "NONE":
		return None, nil
	case "BASIC":
		return Basic, nil
	case "HEADERS":
		return Headers, nil
	case "BODY":
		return Body, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownVerbosity, level)
	}
}

func (v Verbosity) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVerbosity, int(v))
	}

	return []byte(v.String()), nil
}

func (v *Verbosity) UnmarshalText(text []byte) error {
	parsed, err := ParseVerbosity(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
