// Package descriptor defines the module descriptor (module.json) data model,
// the flat legacy catalog entry shape, and the conversion between them.
//
// A descriptor is authored and owned by its source repository; catalog
// entries are ephemeral projections recomputed on every scan and never
// written back to the source.
package descriptor

import "time"

// Platform-wide conventions that descriptors are checked against.
const (
	// PlatformDomain is the apex domain modules are served under.
	PlatformDomain = "infotecha.ru"

	// DefaultOrg is the GitHub organization that hosts module repositories.
	DefaultOrg = "infotecha"

	// RepoPrefix is the naming prefix for module source repositories.
	RepoPrefix = "mod_"

	// FileName is the per-repository descriptor file name.
	FileName = "module.json"

	// DefaultBranch is the ref descriptors are fetched from.
	DefaultBranch = "main"

	// SchemaVersion is the descriptor schema version this build understands.
	SchemaVersion = "1.0"

	// PinnedHugoVersion is the platform's current Hugo version. Descriptors
	// pinning another version get a convention warning.
	PinnedHugoVersion = "0.148.2"
)

// Module is the authoritative per-repository descriptor document.
type Module struct {
	SchemaVersion string     `json:"schema_version"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Version       string     `json:"version"`
	Type          string     `json:"type"`
	Deployment    Deployment `json:"deployment"`
	HugoConfig    HugoConfig `json:"hugo_config"`
	Metadata      Metadata   `json:"metadata"`
	URLs          URLs       `json:"urls"`
	Status        Status     `json:"status"`
}

// Deployment describes where and how a module is deployed.
type Deployment struct {
	Subdomain   string `json:"subdomain"`
	Repository  string `json:"repository"`
	BuildSystem string `json:"build_system"`
}

// HugoConfig carries the module's Hugo build configuration.
type HugoConfig struct {
	Template    string   `json:"template"`
	Theme       string   `json:"theme"`
	Components  []string `json:"components,omitempty"`
	HugoVersion string   `json:"hugo_version"`
}

// Metadata carries authorship and classification metadata.
type Metadata struct {
	Author        string   `json:"author"`
	Maintainer    string   `json:"maintainer,omitempty"`
	License       string   `json:"license,omitempty"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimated_time"`
	Language      string   `json:"language"`
	Tags          []string `json:"tags"`
}

// URLs carries the module's public links.
type URLs struct {
	Production    string `json:"production"`
	Repository    string `json:"repository"`
	Issues        string `json:"issues,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// Status tracks the module's lifecycle state.
type Status struct {
	Lifecycle       string `json:"lifecycle"`
	LastUpdated     string `json:"last_updated"`
	ContentComplete *bool  `json:"content_complete,omitempty"`
	TestingComplete *bool  `json:"testing_complete,omitempty"`
	ReviewComplete  *bool  `json:"review_complete,omitempty"`
}

// Source identifies where a catalog entry originated.
type Source string

// Provenance tags for catalog entries.
const (
	// SourceModuleJSON marks entries resolved from a repository's own descriptor.
	SourceModuleJSON Source = "module.json"

	// SourceCentral marks entries resolved from the legacy central registry.
	SourceCentral Source = "central"
)

// Entry is the flat, legacy-compatible catalog projection of a module.
// Central registry documents carry entries in this shape directly.
type Entry struct {
	Name          string      `json:"name"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Subdomain     string      `json:"subdomain"`
	Repository    string      `json:"repository"`
	URL           string      `json:"url"`
	Version       string      `json:"version,omitempty"`
	Type          string      `json:"type,omitempty"`
	Difficulty    string      `json:"difficulty,omitempty"`
	EstimatedTime string      `json:"estimated_time,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Lifecycle     string      `json:"lifecycle,omitempty"`
	LastUpdated   string      `json:"last_updated,omitempty"`
	HugoConfig    *HugoConfig `json:"hugo_config,omitempty"`

	// ContentRepo is the source repository name used by central registry
	// entries; fallback resolution matches it against the repository
	// being scanned.
	ContentRepo string `json:"content_repo,omitempty"`

	// EntrySource is the provenance tag identifying whether the entry came
	// from the repository's own descriptor or the central registry.
	EntrySource Source `json:"_source,omitempty"`
}

// Catalog is the unified document consumed by the landing page.
type Catalog struct {
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	BuildSystem string    `json:"build_system"`
	Modules     []Entry   `json:"modules"`
}
