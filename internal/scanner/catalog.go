package scanner

import (
	"context"
	"time"

	"github.com/infotecha/modhub/pkg/descriptor"
)

// Catalog document constants.
const (
	catalogVersion = "1.0"
	buildSystem    = "hugo-templates"
)

// BuildCatalog scans the organization and assembles the unified catalog.
// module.json-sourced results are converted to the flat entry shape; central
// results are already flat and pass through. Every entry is tagged with its
// provenance. Failed modules are omitted and logged as skipped with their
// reason, never silently dropped. Ordering follows the repository listing.
func (s *Scanner) BuildCatalog(ctx context.Context) (*descriptor.Catalog, error) {
	results, err := s.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	catalog := &descriptor.Catalog{
		Version:     catalogVersion,
		GeneratedAt: time.Now().UTC(),
		BuildSystem: buildSystem,
		Modules:     make([]descriptor.Entry, 0, len(results)),
	}

	seen := make(map[string]string, len(results)) // module name -> repo that claimed it
	for _, r := range results {
		if !r.Result.Success {
			s.logger.Warn().
				Str("repo", r.Repo).
				Str("reason", r.Result.Error).
				Msg("module skipped")
			continue
		}

		entry := s.toEntry(r.Result)

		if owner, dup := seen[entry.Name]; dup {
			s.logger.Warn().
				Str("module", entry.Name).
				Str("repo", r.Repo).
				Str("claimed_by", owner).
				Msg("duplicate module name, keeping first")
			continue
		}
		seen[entry.Name] = r.Repo

		catalog.Modules = append(catalog.Modules, entry)
	}

	return catalog, nil
}

// toEntry flattens a successful result and stamps its provenance tag.
func (s *Scanner) toEntry(result descriptor.ScanResult) descriptor.Entry {
	var entry descriptor.Entry
	if result.Source == descriptor.SourceCentral {
		entry = *result.Entry
	} else {
		entry = descriptor.ToCatalogEntry(result.Module)
	}
	entry.EntrySource = result.Source
	return entry
}
