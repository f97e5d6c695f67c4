package commands

import (
	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
)

func NewCompositeCommand(cfg *config.Config) *cobra.Command {
	var optStrings []string

	cmd := &cobra.Command{
		Use:   "composite OVERLAY BASE DST",
		Short: "Layer one image onto another",
		Long: `Layer an overlay image onto a base image and write the result to a
new file. Neither input is modified.

Examples:
  magicast composite watermark.png photo.jpg marked.jpg
  magicast composite logo.png photo.jpg out.jpg --opt '-gravity southeast'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			opts, err := operationOptions(cfg, "composite", optStrings)
			if err != nil {
				return err
			}

			if err := tool.Composite(cmd.Context(), args[0], args[1], args[2], opts...); err != nil {
				return mcerrors.InvocationError("composite", err)
			}
			cfg.Logger.Info("Wrote %s", args[2])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&optStrings, "opt", nil, "Composite option, e.g. '-gravity center' (repeatable)")

	return cmd
}
