package commands

import (
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/magicast/magicast/internal/config"
	mcerrors "github.com/magicast/magicast/internal/errors"
	"github.com/magicast/magicast/pkg/magick"
)

// BinaryHealth is one row of the doctor report.
type BinaryHealth struct {
	Subcommand string
	Resolved   string
	Status     string
	Error      string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the image tool binaries are available",
		Long: `Verify that every subcommand magicast drives can actually be run.

This command checks:
- Configuration file validity
- PATH resolution for each subcommand (or the configured prefix binary)
- Explicit binary path overrides from the config file

A non-zero exit status means at least one binary is missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking magicast configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return err
			}
			cfg.Logger.Info("Configuration loaded successfully")

			results := make([]BinaryHealth, 0, len(magick.Subcommands()))
			missing := 0
			for _, sub := range magick.Subcommands() {
				health := checkBinary(cfg, sub)
				if health.Status != "ok" {
					missing++
				}
				results = append(results, health)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SUBCOMMAND\tRESOLVED\tSTATUS\tDETAIL")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Subcommand, r.Resolved, r.Status, r.Error)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if missing > 0 {
				return mcerrors.UserError{
					Message:    fmt.Sprintf("%d of %d binaries are unavailable", missing, len(results)),
					Suggestion: "Install ImageMagick, or point 'binaries' in magicast.yaml at the right paths",
				}
			}
			cfg.Logger.Info("All binaries are available")
			return nil
		},
	}

	return cmd
}

// checkBinary resolves one subcommand the same way the Tool will and
// verifies the result is runnable.
func checkBinary(cfg *config.Config, sub string) BinaryHealth {
	health := BinaryHealth{Subcommand: sub, Status: "ok"}

	if path, ok := cfg.Definition.Binaries[sub]; ok {
		health.Resolved = path
		info, err := os.Stat(path)
		if err != nil {
			health.Status = "missing"
			health.Error = err.Error()
		} else if info.IsDir() || info.Mode()&0111 == 0 {
			health.Status = "error"
			health.Error = "not an executable file"
		}
		return health
	}

	name := sub
	if prefix := cfg.EffectivePrefix(); prefix != "" {
		// With a prefix the subcommand is an argument; the prefix
		// binary is what has to exist.
		name = strings.Fields(prefix)[0]
		health.Resolved = prefix + " " + sub
	} else {
		health.Resolved = sub
	}

	if _, err := osexec.LookPath(name); err != nil {
		health.Status = "missing"
		health.Error = err.Error()
	}
	return health
}
