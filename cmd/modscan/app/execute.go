package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the modscan CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "modscan",
		Short:   "Module catalog scanner",
		Version: a.version,
		Long: `Modscan discovers educational modules across an organization's
repositories, validates their module.json descriptors, and merges them
with the legacy central registry into a single unified catalog.

Repositories without a descriptor fall back to the central registry;
modules that cannot be resolved are reported and skipped, never aborting
the scan.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              a.runScan,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.modscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: pretty, json, yaml, legacy")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.Org, "org", a.config.Org, "GitHub organization to scan")
	rootCmd.PersistentFlags().StringVar(&a.config.RegistryPath, "registry", a.config.RegistryPath, "path to the legacy central registry file")

	// --output as deprecated alias for --format (backwards compatibility)
	rootCmd.PersistentFlags().StringVar(&a.config.Format, "output", "", "")
	_ = rootCmd.PersistentFlags().MarkDeprecated("output", "use --format instead")

	// Scan flags
	rootCmd.Flags().StringVar(&a.moduleName, "module", "", "resolve a single module instead of scanning the organization")
	rootCmd.Flags().BoolVar(&a.validateOnly, "validate", false, "validate every module's descriptor and exit non-zero on failure")

	// Match the version subcommand's output
	rootCmd.SetVersionTemplate("modscan {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config only becomes known after flag parsing, which
	// happens after the initial config load. Re-read it now.
	if cmd.Flags().Changed("config") {
		if err := a.config.ReloadFromFile(a.config.ConfigFile, cmd.Flags().Changed); err != nil {
			return err
		}
	}

	// Update config from parsed flags. These are persistent flags defined
	// in createRootCommand, so lookup errors indicate programming errors.
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
