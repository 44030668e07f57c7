package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/infotecha/modhub/internal/output"
	"github.com/infotecha/modhub/internal/scanner"
	"github.com/infotecha/modhub/pkg/errors"
)

// runScan is the root command's handler: scan the organization and print
// the unified catalog, or handle the --module / --validate variants.
func (a *App) runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if a.moduleName != "" {
		return a.runModule(cmd, a.moduleName)
	}
	if a.validateOnly {
		return a.runValidate(cmd)
	}

	format := output.DetectFormat("")
	if a.config.Format != "" {
		parsed, err := output.ParseFormat(a.config.Format)
		if err != nil {
			return err
		}
		format = parsed
	}

	catalog, err := a.Scanner().BuildCatalog(ctx)
	if err != nil {
		return err
	}

	return output.WriteCatalog(cmd.OutOrStdout(), format, catalog)
}

// runModule resolves a single module and prints its resolved document.
func (a *App) runModule(cmd *cobra.Command, name string) error {
	result, err := a.Scanner().ResolveModule(cmd.Context(), name)
	if err != nil {
		return err
	}

	if !result.Success {
		// Print the failed result so callers can inspect the reason, then
		// exit non-zero.
		if writeErr := output.WriteScanResult(cmd.OutOrStdout(), output.FormatJSON, result); writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("module %q: %s: %w", name, result.Error, errors.ErrNoConfiguration)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Data())
}

// runValidate validates every discovered module's descriptor and prints a
// per-repository pass/fail line. The command fails if any module fails.
func (a *App) runValidate(cmd *cobra.Command) error {
	statuses, err := a.Scanner().ValidateAll(cmd.Context())
	if err != nil {
		return err
	}

	failed := 0
	for _, status := range statuses {
		switch {
		case !status.Found:
			fmt.Fprintf(cmd.OutOrStdout(), "SKIP %s (no module.json)\n", status.Repo)
		case status.Valid:
			fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", status.Repo)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", status.Repo)
			failed++
		}
	}

	if !scanner.AllValid(statuses) {
		return fmt.Errorf("validation failed for %d of %d modules", failed, len(statuses))
	}
	return nil
}
