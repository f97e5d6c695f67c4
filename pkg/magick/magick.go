package magick

import (
	"context"
	"strings"
	"time"

	"github.com/magicast/magicast/internal/logging"
	"github.com/magicast/magicast/internal/metrics"
	pkgexec "github.com/magicast/magicast/pkg/exec"
)

// The ImageMagick subcommands this shim drives.
const (
	SubcommandIdentify  = "identify"
	SubcommandConvert   = "convert"
	SubcommandMogrify   = "mogrify"
	SubcommandComposite = "composite"
	SubcommandMontage   = "montage"
)

// Subcommands returns the external binaries the shim invokes, in a
// stable order suitable for health reporting.
func Subcommands() []string {
	return []string{
		SubcommandIdentify,
		SubcommandConvert,
		SubcommandMogrify,
		SubcommandComposite,
		SubcommandMontage,
	}
}

const filesMarker = "{{files}}"

// Command templates. Structural markers are spliced with rendered
// fragments first, then the remaining :name placeholders are bound to
// quoted values.
const (
	identifyTemplate         = "{{options}} :file"
	identifyExplicitTemplate = "-format :format :file"
	convertTemplate          = "{{options}} :input_file {{output_options}} :output_file"
	mogrifyTemplate          = "{{options}} :file"
	compositeTemplate        = "{{options}} :input_file :base_file :output_file"
	montageTemplate          = "{{options}} {{files}} :output_file"
	versionTemplate          = "-version"
)

// Tool invokes the ImageMagick binaries. It holds no per-call state and
// is safe for concurrent use; each operation spawns exactly one
// subprocess and blocks until its output is fully captured.
type Tool struct {
	executor      pkgexec.CommandExecutor
	logger        *logging.Logger
	prefix        string
	binaries      map[string]string
	legacyBinding bool
}

// ToolOption configures a Tool.
type ToolOption func(*Tool)

// WithExecutor injects a command executor. This is primarily for
// testing, allowing subprocess behavior to be mocked.
func WithExecutor(executor pkgexec.CommandExecutor) ToolOption {
	return func(t *Tool) { t.executor = executor }
}

// WithLogger injects a logger for debug output.
func WithLogger(logger *logging.Logger) ToolOption {
	return func(t *Tool) { t.logger = logger }
}

// WithBinaryPrefix prepends a driver binary to every subcommand, e.g.
// "gm" for GraphicsMagick or "magick" for ImageMagick 7.
func WithBinaryPrefix(prefix string) ToolOption {
	return func(t *Tool) { t.prefix = prefix }
}

// WithBinaryPath overrides the binary invoked for one subcommand with an
// explicit path, bypassing PATH resolution and any prefix.
func WithBinaryPath(subcommand, path string) ToolOption {
	return func(t *Tool) { t.binaries[subcommand] = path }
}

// WithLegacyBinding restores the historical behavior of passing
// unresolved :name placeholders through to the command line instead of
// failing before the subprocess is spawned.
func WithLegacyBinding() ToolOption {
	return func(t *Tool) { t.legacyBinding = true }
}

// New creates a Tool. Binaries resolve from PATH unless overridden.
func New(opts ...ToolOption) *Tool {
	t := &Tool{
		executor: pkgexec.DefaultExecutor(),
		logger:   logging.New(false, false),
		binaries: make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BinaryFor resolves the command a subcommand is invoked as, honoring
// per-subcommand path overrides and the driver prefix.
func (t *Tool) BinaryFor(subcommand string) string {
	if path, ok := t.binaries[subcommand]; ok {
		return path
	}
	if t.prefix != "" {
		return t.prefix + " " + subcommand
	}
	return subcommand
}

// IdentifyExplicit extracts the requested fields from an image via a
// custom delimited identify -format invocation and parses the output
// into a typed record.
func (t *Tool) IdentifyExplicit(ctx context.Context, file string, fields ...Field) (Metadata, error) {
	format, err := formatSpec(fields)
	if err != nil {
		return nil, err
	}
	bindings := []Binding{Bind("format", format), Bind("file", file)}
	if err := t.checkTemplates(identifyExplicitTemplate, bindings); err != nil {
		return nil, err
	}
	cmdline := bindValues(identifyExplicitTemplate, bindings, modeEscaped)
	output, err := t.run(ctx, "identify_explicit", SubcommandIdentify, cmdline)
	if err != nil {
		return nil, err
	}
	return parseExplicit(output)
}

// Identify runs identify on a file and returns the raw output text.
func (t *Tool) Identify(ctx context.Context, file string, opts ...Option) (string, error) {
	bindings := []Binding{Bind("file", file)}
	if err := t.checkTemplates(identifyTemplate, bindings, opts); err != nil {
		return "", err
	}
	cmd := spliceMarker(identifyTemplate, optionsMarker, renderOptions(opts))
	return t.run(ctx, "identify", SubcommandIdentify, bindValues(cmd, bindings, modeEscaped))
}

// Convert reads file and writes outputFile in whatever format its
// extension implies. opts apply to the input, outputOpts to the output.
func (t *Tool) Convert(ctx context.Context, file, outputFile string, opts, outputOpts []Option) error {
	bindings := []Binding{Bind("input_file", file), Bind("output_file", outputFile)}
	if err := t.checkTemplates(convertTemplate, bindings, opts, outputOpts); err != nil {
		return err
	}
	cmd := spliceMarker(convertTemplate, optionsMarker, renderOptions(opts))
	cmd = spliceMarker(cmd, outputOptionsMarker, renderOptions(outputOpts))
	return t.runCommand(ctx, "convert", SubcommandConvert, bindValues(cmd, bindings, modeEscaped))
}

// Mogrify transforms a file in place.
func (t *Tool) Mogrify(ctx context.Context, file string, opts ...Option) error {
	bindings := []Binding{Bind("file", file)}
	if err := t.checkTemplates(mogrifyTemplate, bindings, opts); err != nil {
		return err
	}
	cmd := spliceMarker(mogrifyTemplate, optionsMarker, renderOptions(opts))
	return t.runCommand(ctx, "mogrify", SubcommandMogrify, bindValues(cmd, bindings, modeEscaped))
}

// Composite layers an overlay image onto a base image and writes the
// result to outputFile.
func (t *Tool) Composite(ctx context.Context, overlay, base, outputFile string, opts ...Option) error {
	bindings := []Binding{
		Bind("input_file", overlay),
		Bind("base_file", base),
		Bind("output_file", outputFile),
	}
	if err := t.checkTemplates(compositeTemplate, bindings, opts); err != nil {
		return err
	}
	cmd := spliceMarker(compositeTemplate, optionsMarker, renderOptions(opts))
	return t.runCommand(ctx, "composite", SubcommandComposite, bindValues(cmd, bindings, modeEscaped))
}

// Montage tiles the given files into a single outputFile.
func (t *Tool) Montage(ctx context.Context, files []string, outputFile string, opts ...Option) error {
	bindings := []Binding{Bind("output_file", outputFile)}
	if err := t.checkTemplates(montageTemplate, bindings, opts); err != nil {
		return err
	}
	quoted := make([]string, 0, len(files))
	for _, f := range files {
		quoted = append(quoted, `"`+f+`"`)
	}
	cmd := spliceMarker(montageTemplate, optionsMarker, renderOptions(opts))
	cmd = spliceMarker(cmd, filesMarker, strings.Join(quoted, " "))
	return t.runCommand(ctx, "montage", SubcommandMontage, bindValues(cmd, bindings, modeEscaped))
}

// Version returns the external tool's version banner.
func (t *Tool) Version(ctx context.Context) (string, error) {
	return t.run(ctx, "version", SubcommandIdentify, versionTemplate)
}

// checkTemplates validates placeholder coverage for the main template
// and each valued option's sub-template. Validation runs on the raw
// templates, before any substitution, so bound values containing
// colon-prefixed text cannot be mistaken for placeholders. Legacy
// binding mode skips the check and passes stray placeholders through
// literally.
func (t *Tool) checkTemplates(template string, bindings []Binding, optionLists ...[]Option) error {
	if t.legacyBinding {
		return nil
	}
	if err := checkBound(template, bindings); err != nil {
		return err
	}
	for _, opts := range optionLists {
		for _, opt := range opts {
			if opt.Template == "" {
				continue
			}
			if err := checkBound(opt.Template, opt.Bindings); err != nil {
				return err
			}
		}
	}
	return nil
}

// runCommand runs an invocation whose success is signaled by empty
// output.
func (t *Tool) runCommand(ctx context.Context, operation, subcommand, cmdline string) error {
	_, err := t.invoke(ctx, operation, subcommand, cmdline, true)
	return err
}

// run runs an invocation whose non-empty output is its result, such as
// identify or a version banner.
func (t *Tool) run(ctx context.Context, operation, subcommand, cmdline string) (string, error) {
	return t.invoke(ctx, operation, subcommand, cmdline, false)
}

// invoke assembles the final command line and executes it through the
// shell, returning combined stdout and stderr. The subprocess exit
// status is deliberately not inspected: success and failure are read
// from the output text alone, matching the external tools' CLI
// contract. When silentSuccess is set, any output that matches no known
// error rule is still an error carrying the literal text.
func (t *Tool) invoke(ctx context.Context, operation, subcommand, cmdline string, silentSuccess bool) (string, error) {
	full := t.BinaryFor(subcommand) + " " + cmdline
	t.logger.Debug("running: %s", full)

	start := time.Now()
	stdout, stderr, execErr := t.executor.Execute(ctx, "sh", "-c", full)
	output := string(stdout) + string(stderr)
	execFailed := false
	if output == "" && execErr != nil {
		// The shell itself failed to run (or the context was canceled)
		// before any output was produced. Feed the error text through
		// the same classification path.
		output = execErr.Error()
		execFailed = true
	}

	// Substituted error text is never a result: even on the raw-output
	// path it must classify to an error, not come back as the banner.
	var err error
	if silentSuccess || execFailed {
		err = classify(output)
	} else {
		err = classifyKnown(output)
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordInvocation(operation, status, time.Since(start))

	if err != nil {
		return "", err
	}
	return output, nil
}
