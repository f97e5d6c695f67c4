package magick

import (
	"errors"
	"fmt"
)

// Sentinel errors for the known failure modes of an invocation. Callers
// match these with errors.Is; the raw tool output is carried in the
// wrapping error's message.
var (
	ErrBinaryNotFound   = errors.New("image tool binary not found")
	ErrInputFileMissing = errors.New("input file does not exist")
	ErrNoImageProduced  = errors.New("request did not return an image")
	ErrCannotOpenInput  = errors.New("unable to open input image")

	// ErrUnboundPlaceholder is returned before any subprocess is spawned
	// when a rendered command still contains a :name placeholder. Legacy
	// binding mode (WithLegacyBinding) disables this check.
	ErrUnboundPlaceholder = errors.New("template placeholder left unbound")

	// ErrUnknownField is returned when an explicit metadata request names
	// a field with no known identify format escape.
	ErrUnknownField = errors.New("unknown metadata field")
)

// UnclassifiedError is returned when the tool produced output that
// matches none of the known error rules. The literal output is preserved
// for diagnosis.
type UnclassifiedError struct {
	Output string
}

func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf("image tool returned unrecognized output: %s", e.Output)
}

// MalformedFieldError is returned by the explicit metadata parser when an
// output segment does not contain the "name: value" separator.
type MalformedFieldError struct {
	Segment string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed metadata field %q", e.Segment)
}
