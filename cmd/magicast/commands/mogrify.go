package commands

import (
	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
)

func NewMogrifyCommand(cfg *config.Config) *cobra.Command {
	var optStrings []string

	cmd := &cobra.Command{
		Use:   "mogrify FILE",
		Short: "Transform an image in place",
		Long: `Transform an image in place with mogrify. The file is overwritten;
there is no undo.

Examples:
  magicast mogrify photo.jpg --opt '-resize 1024x768'
  magicast mogrify photo.jpg --opt -strip --opt '-rotate 90'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			opts, err := operationOptions(cfg, "mogrify", optStrings)
			if err != nil {
				return err
			}

			if err := tool.Mogrify(cmd.Context(), args[0], opts...); err != nil {
				return mcerrors.InvocationError("mogrify", err)
			}
			cfg.Logger.Info("Transformed %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&optStrings, "opt", nil, "Mogrify option, e.g. '-resize 50%' (repeatable)")

	return cmd
}
