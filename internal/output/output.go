// Package output renders the unified catalog and scan results in the formats
// the scanning tool supports: a human-readable table, JSON, YAML, and the
// legacy flat document shape.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/infotecha/modhub/pkg/descriptor"
)

// Format identifies an output format.
type Format string

// Supported output formats.
const (
	// FormatPretty renders a human-readable table.
	FormatPretty Format = "pretty"
	// FormatJSON renders the unified catalog document.
	FormatJSON Format = "json"
	// FormatYAML renders the unified catalog document as YAML.
	FormatYAML Format = "yaml"
	// FormatLegacy renders the flat legacy registry shape.
	FormatLegacy Format = "legacy"
)

// ParseFormat converts a string to a Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatPretty, FormatJSON, FormatYAML, FormatLegacy:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (pretty, json, yaml, legacy)", s)
	}
}

// DetectFormat auto-detects the format: explicit value if given, a table on
// terminals, JSON for pipes and redirects.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatPretty
	}
	return FormatJSON
}

// WriteCatalog renders a catalog in the given format.
func WriteCatalog(w io.Writer, format Format, catalog *descriptor.Catalog) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, catalog)
	case FormatYAML:
		return writeYAML(w, catalog)
	case FormatLegacy:
		// The legacy consumers expect the bare central-registry shape.
		return writeJSON(w, map[string]any{"modules": catalog.Modules})
	default:
		return writeTable(w, catalog)
	}
}

// WriteScanResult renders a single module's resolution result. The table
// format has no single-module rendering, so pretty falls back to JSON.
func WriteScanResult(w io.Writer, format Format, result descriptor.ScanResult) error {
	if format == FormatYAML {
		return writeYAML(w, result)
	}
	return writeJSON(w, result)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	// UseJSONMarshaler keeps the YAML keys aligned with the JSON document
	// shape, including the discriminated scan-result union.
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.UseJSONMarshaler())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// writeTable renders the catalog as a table, one row per module.
func writeTable(w io.Writer, catalog *descriptor.Catalog) error {
	table := tablewriter.NewTable(w)
	table.Header("MODULE", "VERSION", "LIFECYCLE", "SOURCE", "URL")

	for _, entry := range catalog.Modules {
		title := entry.Title
		if title == "" {
			title = DisplayName(entry.Name)
		}
		if err := table.Append(
			title,
			orDash(entry.Version),
			orDash(entry.Lifecycle),
			string(entry.EntrySource),
			entry.URL,
		); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d modules, generated %s\n",
		len(catalog.Modules), catalog.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return err
}

// DisplayName turns a kebab-case module name into a title-cased label.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
