package magick

import "strings"

// Option is one command-line flag destined for the {{options}} or
// {{output_options}} position of a command template. Options are
// immutable and constructed per call.
type Option struct {
	// Switch is the flag literal, including its leading dash.
	Switch string
	// Template is the argument sub-template for valued options,
	// empty for bare switches.
	Template string
	// Bindings are applied to Template with raw (unquoted) substitution.
	Bindings []Binding
}

// Bare constructs a flag with no argument.
func Bare(sw string) Option {
	return Option{Switch: sw}
}

// Valued constructs a flag whose argument is produced by binding values
// into a sub-template.
func Valued(sw, template string, bindings ...Binding) Option {
	return Option{Switch: sw, Template: template, Bindings: bindings}
}

// renderOptions produces the space-joined fragment spliced into a
// command template at the {{options}} position. Order is preserved
// exactly: the external tools treat flag order as significant, with
// later flags overriding earlier ones. Each valued option is rendered
// as one double-quoted "switch argument" unit.
func renderOptions(opts []Option) string {
	parts := make([]string, 0, len(opts))
	for _, opt := range opts {
		if opt.Template == "" && len(opt.Bindings) == 0 {
			parts = append(parts, opt.Switch)
			continue
		}
		arg := bindValues(opt.Template, opt.Bindings, modeRaw)
		parts = append(parts, `"`+opt.Switch+" "+arg+`"`)
	}
	return strings.Join(parts, " ")
}
