package magick

import (
	"fmt"
	"strings"
)

// classifyRule maps a substring of the external tool's output to the
// sentinel error it signals.
type classifyRule struct {
	substr string
	kind   error
}

// Rule order is part of the contract: output may contain more than one
// matchable substring and the first match wins. Do not reorder.
var classifyRules = []classifyRule{
	{"command not found", ErrBinaryNotFound},
	{"No such file", ErrInputFileMissing},
	{"Request did not return an image", ErrNoImageProduced},
	{"unable to open image", ErrCannotOpenInput},
}

// classifyKnown returns the sentinel error for the first matching rule,
// or nil when the output matches no known error message.
func classifyKnown(output string) error {
	for _, rule := range classifyRules {
		if strings.Contains(output, rule.substr) {
			return fmt.Errorf("%w: %s", rule.kind, strings.TrimSpace(output))
		}
	}
	return nil
}

// classify interprets the combined output of a command invocation whose
// success is signaled by silence. Empty output is success; output that
// matches a known rule maps to that rule's sentinel; anything else is an
// unclassified error carrying the literal text.
func classify(output string) error {
	if err := classifyKnown(output); err != nil {
		return err
	}
	if output == "" {
		return nil
	}
	return &UnclassifiedError{Output: output}
}
