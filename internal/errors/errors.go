// Package errors holds the user-facing error values the CLI prints.
// All errors in this codebase are returned as values; there is no
// panic-based control flow and no retry logic.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magicast/magicast/pkg/magick"
)

// UserError represents an error that should be shown to the user with
// helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError represents an image-tool invocation error.
type CommandError struct {
	Command    string
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// InvocationError wraps an error from the magick shim with a suggestion
// matched to its classified kind, so the CLI surfaces something more
// actionable than the tool's raw message.
func InvocationError(operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("%s failed", operation),
		Suggestion: getInvocationSuggestion(err),
		Err:        err,
	}
}

// getInvocationSuggestion returns a suggestion for a classified
// invocation error, or "" when there is nothing useful to add.
func getInvocationSuggestion(err error) string {
	switch {
	case errors.Is(err, magick.ErrBinaryNotFound):
		return "Install ImageMagick (apt install imagemagick, brew install imagemagick) or set 'prefix'/'binaries' in magicast.yaml"
	case errors.Is(err, magick.ErrInputFileMissing):
		return "Check that the input file path exists and is spelled correctly"
	case errors.Is(err, magick.ErrNoImageProduced):
		return "The source did not decode to an image; verify the file is a supported image format"
	case errors.Is(err, magick.ErrCannotOpenInput):
		return "Check the file's read permissions and that it is not truncated or corrupt"
	case errors.Is(err, magick.ErrUnboundPlaceholder):
		return "This is a bug in the caller: a command template placeholder was never bound"
	}

	var malformed *magick.MalformedFieldError
	if errors.As(err, &malformed) {
		return "The tool's -format output did not match the requested fields; check the tool version with 'magicast version'"
	}

	return ""
}
