// Package main provides the entry point for the modvalidate CLI tool, the
// standalone descriptor validator used by module authors and CI pipelines.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/infotecha/modhub/internal/transport"
	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/descriptor/validate"
	"github.com/infotecha/modhub/pkg/errors"
)

// Version information populated by goreleaser.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		url      string
		template bool
	)

	cmd := &cobra.Command{
		Use:     "modvalidate [file]",
		Short:   "Validate a module.json descriptor",
		Version: version,
		Long: `Modvalidate checks a module descriptor against the platform schema and
naming conventions. Structural violations fail validation; convention
mismatches are reported as warnings only.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case template:
				return printTemplate(cmd.OutOrStdout())
			case url != "":
				return validateRemote(cmd, url)
			case len(args) == 1:
				return validateFile(cmd, args[0])
			default:
				return fmt.Errorf("nothing to validate: pass a descriptor file, --url, or --template")
			}
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "validate a remote descriptor fetched from the given URL")
	cmd.Flags().BoolVar(&template, "template", false, "print a filled-in descriptor template and exit")
	cmd.SetVersionTemplate("modvalidate {{.Version}}\n")

	return cmd
}

// printTemplate writes a sample descriptor that passes validation.
func printTemplate(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(descriptor.Template())
}

func validateFile(cmd *cobra.Command, path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	return report(cmd, path, doc)
}

func validateRemote(cmd *cobra.Command, url string) error {
	client := transport.New(&transport.NoAuth{})

	resp, err := client.Get(cmd.Context(), url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return &errors.APIError{
			Host:       resp.Request.URL.Host,
			Endpoint:   resp.Request.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", url, err)
	}
	return report(cmd, url, doc)
}

// report runs structural and convention checks, prints the findings, and
// returns an error when the descriptor is structurally invalid.
func report(cmd *cobra.Command, label string, doc []byte) error {
	out := cmd.OutOrStdout()

	result, err := validate.Structure(doc)
	if err != nil {
		return err
	}

	if !result.Valid {
		fmt.Fprintf(out, "INVALID %s\n", label)
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("%d structural violations", len(result.Issues))
	}

	var module descriptor.Module
	if err := validate.ParseJSON(doc, &module); err != nil {
		return err
	}

	warnings := validate.Conventions(&module)
	for _, warning := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", warning)
	}

	fmt.Fprintf(out, "VALID %s (%d warnings)\n", label, len(warnings))
	return nil
}
