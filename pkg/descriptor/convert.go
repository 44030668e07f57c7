package descriptor

import "strings"

// RepositoryFor derives the conventional source repository name for a module:
// "mod_" plus the module name with dashes replaced by underscores.
func RepositoryFor(name string) string {
	return RepoPrefix + strings.ReplaceAll(name, "-", "_")
}

// CanonicalURL derives the conventional production URL for a module.
func CanonicalURL(name string) string {
	return "https://" + name + "." + PlatformDomain
}

// ToCatalogEntry projects a descriptor onto the flat legacy catalog shape.
// It performs no validation: optional fields fall back to their derived
// conventional values, so an incomplete descriptor still yields a usable
// best-effort entry.
func ToCatalogEntry(m *Module) Entry {
	entry := Entry{
		Name:          m.Name,
		Title:         m.Title,
		Description:   m.Description,
		Subdomain:     m.Deployment.Subdomain,
		Repository:    m.Deployment.Repository,
		URL:           m.URLs.Production,
		Version:       m.Version,
		Type:          m.Type,
		Difficulty:    m.Metadata.Difficulty,
		EstimatedTime: m.Metadata.EstimatedTime,
		Lifecycle:     m.Status.Lifecycle,
		LastUpdated:   m.Status.LastUpdated,
	}

	if entry.Subdomain == "" {
		entry.Subdomain = m.Name
	}
	if entry.Repository == "" {
		entry.Repository = RepositoryFor(m.Name)
	}
	if entry.URL == "" {
		entry.URL = CanonicalURL(m.Name)
	}

	if m.Metadata.Tags != nil {
		entry.Tags = append([]string{}, m.Metadata.Tags...)
	} else {
		entry.Tags = []string{}
	}

	hugo := m.HugoConfig
	if hugo.Components != nil {
		hugo.Components = append([]string{}, hugo.Components...)
	}
	entry.HugoConfig = &hugo

	return entry
}
