package magick

import (
	"fmt"
	"regexp"
	"strings"
)

// Command templates use two placeholder forms, substituted by two
// clearly sequenced passes: structural markers ({{options}},
// {{output_options}}) are spliced first with an already-rendered option
// fragment, then :name placeholders are bound to values. Splicing before
// binding keeps a bound value from accidentally introducing text that a
// structural pass would re-match.
const (
	optionsMarker       = "{{options}}"
	outputOptionsMarker = "{{output_options}}"
)

type bindMode int

const (
	// modeEscaped wraps each substituted value in double quotes.
	modeEscaped bindMode = iota
	// modeRaw substitutes values verbatim.
	modeRaw
)

// Binding associates a :name placeholder with a value to substitute.
type Binding struct {
	Name  string
	Value interface{}
}

// Bind constructs a single placeholder binding.
func Bind(name string, value interface{}) Binding {
	return Binding{Name: name, Value: value}
}

// spliceMarker replaces a structural marker with a rendered fragment.
// An empty fragment removes the marker and one adjacent space so the
// command line does not collect doubled separators.
func spliceMarker(template, marker, fragment string) string {
	if fragment == "" {
		s := strings.ReplaceAll(template, marker+" ", "")
		return strings.ReplaceAll(s, marker, "")
	}
	return strings.ReplaceAll(template, marker, fragment)
}

// bindValues substitutes every occurrence of each binding's :name
// placeholder with the value's text form, quoted when mode is
// modeEscaped. Bindings are processed in the order supplied; a key with
// no matching placeholder is a no-op, not an error.
func bindValues(template string, bindings []Binding, mode bindMode) string {
	out := template
	for _, b := range bindings {
		text := stringify(b.Value)
		if mode == modeEscaped {
			text = `"` + text + `"`
		}
		out = strings.ReplaceAll(out, ":"+b.Name, text)
	}
	return out
}

// Placeholders start a word: preceded by start-of-string, whitespace, or
// an opening quote. Colons inside values ("width: 100") do not match.
var placeholderPattern = regexp.MustCompile(`(?:^|[\s"]):([a-z_][a-z0-9_]*)`)

// templatePlaceholders reports the :name placeholders a raw template
// names, in order of appearance.
func templatePlaceholders(template string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

// checkBound verifies every placeholder a raw template names is covered
// by a binding key. The check runs before substitution on purpose:
// bound values may legitimately contain colon-prefixed words ("photo
// :final.jpg") and must never register as placeholders.
func checkBound(template string, bindings []Binding) error {
	covered := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		covered[b.Name] = true
	}
	var missing []string
	for _, name := range templatePlaceholders(template) {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnboundPlaceholder, strings.Join(missing, ", "))
	}
	return nil
}
