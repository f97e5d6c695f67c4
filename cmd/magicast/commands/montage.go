package commands

import (
	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
)

func NewMontageCommand(cfg *config.Config) *cobra.Command {
	var optStrings []string

	cmd := &cobra.Command{
		Use:   "montage DST FILE...",
		Short: "Tile images into a single montage",
		Long: `Tile a set of images into one montage image. The destination comes
first so the file list can be arbitrarily long.

Examples:
  magicast montage contact.png photo1.jpg photo2.jpg photo3.jpg
  magicast montage grid.png *.jpg --opt '-tile 4x' --opt '-geometry +2+2'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			opts, err := operationOptions(cfg, "montage", optStrings)
			if err != nil {
				return err
			}

			if err := tool.Montage(cmd.Context(), args[1:], args[0], opts...); err != nil {
				return mcerrors.InvocationError("montage", err)
			}
			cfg.Logger.Info("Wrote %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&optStrings, "opt", nil, "Montage option, e.g. '-tile 4x' (repeatable)")

	return cmd
}
