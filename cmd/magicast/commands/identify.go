package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
	"github.com/magicast/magicast/pkg/magick"
)

func NewIdentifyCommand(cfg *config.Config) *cobra.Command {
	var (
		fields     []string
		optStrings []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "identify FILE",
		Short: "Inspect an image's properties",
		Long: `Run identify against an image.

Without --field, the external tool's raw output is printed unchanged.
With one or more --field flags, magicast requests exactly those
properties through a delimited -format invocation and prints them as
"name: value" lines (or JSON with --json).

Known fields: filename, width, height, type, depth, size, quality,
colorspace.

Examples:
  # Raw identify output
  magicast identify photo.jpg

  # Just the dimensions, parsed and typed
  magicast identify photo.jpg --field width --field height

  # Verbose output from the tool itself
  magicast identify photo.jpg --opt -verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]

			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			if len(fields) == 0 {
				opts, err := operationOptions(cfg, "identify", optStrings)
				if err != nil {
					return err
				}
				output, err := tool.Identify(cmd.Context(), file, opts...)
				if err != nil {
					return mcerrors.InvocationError("identify", err)
				}
				fmt.Fprint(os.Stdout, output)
				return nil
			}

			requested := make([]magick.Field, 0, len(fields))
			for _, f := range fields {
				requested = append(requested, magick.Field(f))
			}

			record, err := tool.IdentifyExplicit(cmd.Context(), file, requested...)
			if err != nil {
				return mcerrors.InvocationError("identify", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}

			// Print in the order the caller asked for.
			for _, f := range requested {
				fmt.Fprintf(os.Stdout, "%s: %v\n", f, record[f])
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "Metadata field to extract (repeatable)")
	cmd.Flags().StringArrayVar(&optStrings, "opt", nil, "Extra identify option, e.g. '-verbose' (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print extracted fields as JSON")

	return cmd
}
