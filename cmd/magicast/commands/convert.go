package commands

import (
	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
)

func NewConvertCommand(cfg *config.Config) *cobra.Command {
	var (
		optStrings       []string
		outputOptStrings []string
	)

	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Convert an image to a new file",
		Long: `Convert an image, writing the result to a new file. The output
format follows the destination's extension.

Input options (--opt) are placed before the source file on the command
line, output options (--output-opt) between source and destination,
matching how the convert tool scopes its flags.

Examples:
  # Format conversion via the extension
  magicast convert photo.jpg photo.png

  # Shrink and recompress
  magicast convert photo.jpg small.jpg --opt '-resize 50%' --output-opt '-quality 80'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			opts, err := operationOptions(cfg, "convert", optStrings)
			if err != nil {
				return err
			}
			outputOpts, err := parseOptions(outputOptStrings)
			if err != nil {
				return err
			}

			if err := tool.Convert(cmd.Context(), args[0], args[1], opts, outputOpts); err != nil {
				return mcerrors.InvocationError("convert", err)
			}
			cfg.Logger.Info("Wrote %s", args[1])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&optStrings, "opt", nil, "Input option, e.g. '-resize 50%' (repeatable)")
	cmd.Flags().StringArrayVar(&outputOptStrings, "output-opt", nil, "Output option, e.g. '-quality 80' (repeatable)")

	return cmd
}
