// Package registry loads the legacy central registry document (modules.json)
// used as the fallback source for repositories that do not carry their own
// descriptor.
package registry

import (
	"encoding/json"
	"os"

	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/errors"
)

// DefaultPath is where the central registry document is looked up when no
// explicit path is configured.
const DefaultPath = "modules.json"

// Registry is the parsed central registry document.
type Registry struct {
	Modules []descriptor.Entry
}

// document tolerates both historical registry shapes: modules as a mapping
// keyed by module name, and modules as a flat sequence.
type document struct {
	Modules json.RawMessage `json:"modules"`
}

// Load reads and parses the central registry file. A malformed registry is a
// top-level error: unlike per-repository failures it terminates the scan,
// since every fallback lookup would be wrong.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse parses registry content. The source name is used in error messages.
func Parse(data []byte, source string) (*Registry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	if len(doc.Modules) == 0 {
		return &Registry{}, nil
	}

	// Sequence shape first, then mapping keyed by module name.
	var list []descriptor.Entry
	if err := json.Unmarshal(doc.Modules, &list); err == nil {
		return &Registry{Modules: list}, nil
	}

	var byName map[string]descriptor.Entry
	if err := json.Unmarshal(doc.Modules, &byName); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}

	entries := make([]descriptor.Entry, 0, len(byName))
	for name, entry := range byName {
		if entry.Name == "" {
			entry.Name = name
		}
		entries = append(entries, entry)
	}
	return &Registry{Modules: entries}, nil
}

// FindByContentRepo returns the entry whose content_repo field equals the
// given repository name.
func (r *Registry) FindByContentRepo(repo string) (*descriptor.Entry, bool) {
	for i := range r.Modules {
		if r.Modules[i].ContentRepo == repo {
			return &r.Modules[i], true
		}
	}
	return nil, false
}
