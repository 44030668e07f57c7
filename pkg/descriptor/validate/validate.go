// Package validate checks module descriptors against the versioned JSON
// schema (structural) and the platform's naming conventions (semantic).
// Structural violations never escape as panics or hard errors: they are
// collected exhaustively and reported to the caller, which decides process
// exit behavior.
package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/module-1.0.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single structural violation with its location in the document.
type Issue struct {
	Path    string `json:"path"`    // instance location, e.g. "/metadata/difficulty"
	Message string `json:"message"` // human-readable error message
	Value   any    `json:"value"`   // offending value, nil when the field is absent
}

// Result is the outcome of structural validation.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// schema compiles the embedded descriptor schema once and returns it.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("module-1.0.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("module-1.0.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Structure validates raw descriptor JSON against the schema identified by
// schema_version. Every violation is collected; validation does not stop at
// the first error. The error return is reserved for schema compilation or
// unreadable input, not for validation failures.
func Structure(doc []byte) (*Result, error) {
	s, err := schema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing descriptor JSON: %w", err)
	}

	var issues []Issue
	if err := s.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(validationErr, inst)
	}

	// The schema only checks the date shape; a well-shaped non-date like
	// 2025-13-45 still has to be rejected. When the schema already flagged
	// the field, a second issue at the same path would be noise.
	if !hasIssueAt(issues, "/status/last_updated") {
		issues = append(issues, checkLastUpdated(inst)...)
	}

	return &Result{Valid: len(issues) == 0, Issues: issues}, nil
}

func hasIssueAt(issues []Issue, path string) bool {
	for _, issue := range issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

// checkLastUpdated verifies that status.last_updated parses as a calendar date.
func checkLastUpdated(inst any) []Issue {
	root, ok := inst.(map[string]any)
	if !ok {
		return nil
	}
	status, ok := root["status"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := status["last_updated"].(string)
	if !ok {
		return nil
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return []Issue{{
			Path:    "/status/last_updated",
			Message: "is not a valid calendar date",
			Value:   raw,
		}}
	}
	return nil
}

// extractIssues walks the validation error tree and returns leaf-level issues
// with their offending values resolved from the instance document.
func extractIssues(ve *jsonschema.ValidationError, inst any) []Issue {
	var issues []Issue
	collectIssues(ve, inst, &issues)

	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return dedupeIssues(issues)
}

// collectIssues recursively walks the error tree to find leaf errors with
// specific location information.
func collectIssues(ve *jsonschema.ValidationError, inst any, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		// Container keywords carry no extra information beyond their causes.
		if keyword == "allOf" || keyword == "oneOf" || keyword == "$ref" {
			return
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		*issues = append(*issues, Issue{
			Path:    path,
			Message: msg,
			Value:   valueAt(inst, ve.InstanceLocation),
		})
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(cause, inst, issues)
	}
}

// valueAt resolves an instance location to the offending document value.
// Missing-required-field errors resolve to nil.
func valueAt(inst any, location []string) any {
	current := inst
	for _, segment := range location {
		switch v := current.(type) {
		case map[string]any:
			current = v[segment]
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil
			}
			current = v[idx]
		default:
			return nil
		}
	}
	return current
}

// dedupeIssues removes duplicate issues (same path and message).
func dedupeIssues(issues []Issue) []Issue {
	seen := make(map[string]bool, len(issues))
	result := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// ParseJSON is a convenience wrapper that reports whether doc is valid JSON
// at all, decoding it into out when it is.
func ParseJSON(doc []byte, out any) error {
	return json.Unmarshal(doc, out)
}
