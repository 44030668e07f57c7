package validate

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/infotecha/modhub/pkg/descriptor"
)

// Conventions runs the platform's semantic convention checks against a
// structurally valid descriptor. Each failed check yields exactly one
// human-readable warning; none of them can fail validation.
//
// Checks run in a fixed order: subdomain, repository name, production URL,
// license, Hugo version, tag count.
func Conventions(m *descriptor.Module) []string {
	var warnings []string

	if m.Deployment.Subdomain != m.Name {
		warnings = append(warnings, fmt.Sprintf(
			"deployment.subdomain %q does not match module name %q",
			m.Deployment.Subdomain, m.Name))
	}

	if want := descriptor.RepositoryFor(m.Name); m.Deployment.Repository != want {
		warnings = append(warnings, fmt.Sprintf(
			"deployment.repository %q does not follow the %q convention",
			m.Deployment.Repository, want))
	}

	if want := descriptor.CanonicalURL(m.Name); m.URLs.Production != want {
		warnings = append(warnings, fmt.Sprintf(
			"urls.production %q does not match the canonical URL %q",
			m.URLs.Production, want))
	}

	if m.Metadata.License == "" {
		warnings = append(warnings, "metadata.license is not set")
	}

	if warn := checkHugoVersion(m.HugoConfig.HugoVersion); warn != "" {
		warnings = append(warnings, warn)
	}

	if len(m.Metadata.Tags) < 3 {
		warnings = append(warnings, fmt.Sprintf(
			"metadata.tags has %d tags; at least 3 are recommended for catalog search",
			len(m.Metadata.Tags)))
	}

	return warnings
}

// checkHugoVersion compares the descriptor's Hugo version against the
// platform's pinned version. Returns an empty string when they match.
func checkHugoVersion(version string) string {
	pinned := semver.MustParse(descriptor.PinnedHugoVersion)

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Sprintf("hugo_config.hugo_version %q is not a valid semantic version", version)
	}
	if !v.Equal(pinned) {
		return fmt.Sprintf(
			"hugo_config.hugo_version %s differs from the platform's pinned version %s",
			version, descriptor.PinnedHugoVersion)
	}
	return ""
}
