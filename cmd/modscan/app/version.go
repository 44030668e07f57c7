package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			if detailed {
				fmt.Fprintf(cmd.OutOrStdout(), "modscan %s\n", a.version)
				fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", a.commit)
				fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s\n", a.date)
				fmt.Fprintf(cmd.OutOrStdout(), "  built by: %s\n", a.builtBy)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "modscan %s\n", a.version)
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "show commit and build information")

	return cmd
}
