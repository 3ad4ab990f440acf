package kakao

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrInvalidType         = errors.New("invalid type")
	ErrInvalidAction       = errors.New("invalid action")
	ErrInvalidLink         = errors.New("invalid link")
	ErrCardinalityExceeded = errors.New("cardinality exceeded")
	ErrContractViolation   = errors.New("contract violation")
)

// ValidationError reports where in the response graph a rule was broken.
type ValidationError struct {
	Kind    error
	Path    string // dotted location, e.g. outputs[0].basicCard.buttons[1]
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("kakao: %v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("kakao: %s: %v: %s", e.Path, e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// within prefixes the path of a *ValidationError with segment.
// Other errors pass through untouched.
func within(err error, segment string) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := *ve
	switch {
	case out.Path == "":
		out.Path = segment
	case strings.HasPrefix(out.Path, "["):
		out.Path = segment + out.Path
	default:
		out.Path = segment + "." + out.Path
	}
	return &out
}

func index(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}

func required(field, value string) error {
	if value == "" {
		return newError(ErrInvalidType, "%s is required", field)
	}
	return nil
}

func atMost(field string, n, max int) error {
	if n > max {
		return newError(ErrCardinalityExceeded, "%s has %d entries, at most %d allowed", field, n, max)
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return newError(ErrContractViolation, "%s must be one of %v, got %q", field, allowed, value)
}
