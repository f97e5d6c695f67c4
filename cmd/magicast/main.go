package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magicast/magicast/cmd/magicast/commands"
	"github.com/magicast/magicast/internal/config"
	"github.com/magicast/magicast/internal/logging"
	"github.com/magicast/magicast/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
		prefix     string
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "magicast",
		Short: "Drive the ImageMagick command-line tools",
		Long: `magicast builds, runs, and interprets invocations of the ImageMagick
tools (identify, convert, mogrify, composite, montage). All image work
happens in the external binaries; magicast renders the command lines,
captures the output, and turns it into something a script can rely on.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			// Update config with parsed values
			cfg.Path = configFile
			cfg.Logger = logger
			cfg.Prefix = prefix

			metrics.Init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "magicast.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Binary prefix, e.g. 'gm' or 'magick'")

	// Add commands
	rootCmd.AddCommand(
		commands.NewIdentifyCommand(cfg),
		commands.NewConvertCommand(cfg),
		commands.NewMogrifyCommand(cfg),
		commands.NewCompositeCommand(cfg),
		commands.NewMontageCommand(cfg),
		commands.NewVersionCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
