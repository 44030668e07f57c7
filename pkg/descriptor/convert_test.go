package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testModule() *Module {
	return &Module{
		SchemaVersion: SchemaVersion,
		Name:          "linux-base",
		Title:         "Linux Basics",
		Description:   "Introduction to the Linux command line.",
		Version:       "1.2.0",
		Type:          "educational",
		Deployment: Deployment{
			Subdomain:   "linux-base",
			Repository:  "mod_linux_base",
			BuildSystem: "hugo",
		},
		HugoConfig: HugoConfig{
			Template:    "educational-module",
			Theme:       "compose",
			Components:  []string{"quiz", "terminal"},
			HugoVersion: PinnedHugoVersion,
		},
		Metadata: Metadata{
			Author:        "infotecha",
			License:       "CC-BY-4.0",
			Difficulty:    "beginner",
			EstimatedTime: "8 hours",
			Language:      "ru",
			Tags:          []string{"linux", "cli", "basics"},
		},
		URLs: URLs{
			Production: "https://linux-base.infotecha.ru",
			Repository: "https://github.com/info-tech-io/mod_linux_base",
		},
		Status: Status{
			Lifecycle:   "stable",
			LastUpdated: "2025-06-10",
		},
	}
}

func TestToCatalogEntryExplicitValuesPreserved(t *testing.T) {
	entry := ToCatalogEntry(testModule())

	assert.Equal(t, "linux-base", entry.Name)
	assert.Equal(t, "linux-base", entry.Subdomain)
	assert.Equal(t, "mod_linux_base", entry.Repository)
	assert.Equal(t, "https://linux-base.infotecha.ru", entry.URL)
	assert.Equal(t, "1.2.0", entry.Version)
	assert.Equal(t, "beginner", entry.Difficulty)
	assert.Equal(t, "8 hours", entry.EstimatedTime)
	assert.Equal(t, []string{"linux", "cli", "basics"}, entry.Tags)
	assert.Equal(t, "stable", entry.Lifecycle)
	assert.Equal(t, "2025-06-10", entry.LastUpdated)
}

func TestToCatalogEntryDerivesFallbacks(t *testing.T) {
	m := testModule()
	m.Deployment.Subdomain = ""
	m.Deployment.Repository = ""
	m.URLs.Production = ""

	entry := ToCatalogEntry(m)

	assert.Equal(t, "linux-base", entry.Subdomain, "subdomain falls back to name")
	assert.Equal(t, "mod_linux_base", entry.Repository, "repository falls back to mod_ + snake case")
	assert.Equal(t, "https://linux-base.infotecha.ru", entry.URL, "url falls back to canonical form")
}

func TestToCatalogEntryEmptyTags(t *testing.T) {
	m := testModule()
	m.Metadata.Tags = nil

	entry := ToCatalogEntry(m)

	assert.NotNil(t, entry.Tags, "tags must be an empty sequence, not absent")
	assert.Empty(t, entry.Tags)
}

func TestToCatalogEntryCopiesHugoConfig(t *testing.T) {
	m := testModule()
	entry := ToCatalogEntry(m)

	assert.Equal(t, m.HugoConfig.Theme, entry.HugoConfig.Theme)

	// Mutating the entry's copy must not touch the descriptor.
	entry.HugoConfig.Components[0] = "changed"
	assert.Equal(t, "quiz", m.HugoConfig.Components[0])
}

func TestRepositoryFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"linux-base", "mod_linux_base"},
		{"docker", "mod_docker"},
		{"ci-cd-intro", "mod_ci_cd_intro"},
	}

	for _, tt := range tests {
		if got := RepositoryFor(tt.name); got != tt.want {
			t.Errorf("RepositoryFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
