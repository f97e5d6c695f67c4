package commands

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
	"github.com/magicast/magicast/pkg/magick"
)

// buildTool loads the config file and assembles a magick.Tool honoring
// the prefix and binary overrides.
func buildTool(cfg *config.Config) (*magick.Tool, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	opts := []magick.ToolOption{magick.WithLogger(cfg.Logger)}
	if prefix := cfg.EffectivePrefix(); prefix != "" {
		opts = append(opts, magick.WithBinaryPrefix(prefix))
	}
	for sub, path := range cfg.Definition.Binaries {
		opts = append(opts, magick.WithBinaryPath(sub, path))
	}
	return magick.New(opts...), nil
}

// parseOptions converts --opt strings into typed options. Each string
// is shell-split: the first word is the switch, anything after it is
// the argument. "-verbose" becomes a bare switch; "-resize 50%" a
// valued one.
func parseOptions(values []string) ([]magick.Option, error) {
	opts := make([]magick.Option, 0, len(values))
	for _, v := range values {
		words, err := shellquote.Split(v)
		if err != nil {
			return nil, mcerrors.UserError{
				Message:    fmt.Sprintf("Cannot parse option %q", v),
				Suggestion: "Write options as '-switch' or '-switch value', quoting the whole thing once",
				Err:        err,
			}
		}
		switch len(words) {
		case 0:
			continue
		case 1:
			opts = append(opts, magick.Bare(words[0]))
		default:
			opts = append(opts, magick.Valued(words[0], ":value",
				magick.Bind("value", strings.Join(words[1:], " "))))
		}
	}
	return opts, nil
}

// operationOptions merges an operation's configured default options
// with the command line's --opt values. Defaults come first so explicit
// flags win: the tools treat later flags as overriding earlier ones.
func operationOptions(cfg *config.Config, operation string, cli []string) ([]magick.Option, error) {
	merged := make([]string, 0, len(cli))
	merged = append(merged, cfg.DefaultOptionsFor(operation)...)
	merged = append(merged, cli...)
	return parseOptions(merged)
}
