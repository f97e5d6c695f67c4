package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
)

func NewVersionCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the external tool's version banner",
		Long: `Print the version banner of the underlying image tool. This is the
external tool's version, not magicast's own; use --version on the root
command for that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := buildTool(cfg)
			if err != nil {
				return err
			}

			banner, err := tool.Version(cmd.Context())
			if err != nil {
				return mcerrors.InvocationError("version", err)
			}
			fmt.Fprint(os.Stdout, banner)
			return nil
		},
	}

	return cmd
}
