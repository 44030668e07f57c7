package descriptor

import "time"

// Template returns a filled-in sample descriptor that passes structural
// validation and every platform convention. It is the starting point printed
// by the validator's --template flag for module authors.
func Template() *Module {
	name := "my-module"
	return &Module{
		SchemaVersion: SchemaVersion,
		Name:          name,
		Title:         "My Module",
		Description:   "An educational module teaching a new topic on the platform.",
		Version:       "1.0.0",
		Type:          "educational",
		Deployment: Deployment{
			Subdomain:   name,
			Repository:  RepositoryFor(name),
			BuildSystem: "hugo-templates",
		},
		HugoConfig: HugoConfig{
			Template:    "default",
			Theme:       "compose",
			Components:  []string{"quiz-engine"},
			HugoVersion: PinnedHugoVersion,
		},
		Metadata: Metadata{
			Author:        "Module Author",
			License:       "MIT",
			Difficulty:    "beginner",
			EstimatedTime: "4-6 hours",
			Language:      "ru",
			Tags:          []string{"education", "tutorial", "beginner"},
		},
		URLs: URLs{
			Production: CanonicalURL(name),
			Repository: "https://github.com/" + DefaultOrg + "/" + RepositoryFor(name),
		},
		Status: Status{
			Lifecycle:   "stable",
			LastUpdated: time.Now().UTC().Format("2006-01-02"),
		},
	}
}
