package scanner

import (
	"context"

	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/descriptor/validate"
	"github.com/infotecha/modhub/pkg/logging"
)

// ValidationStatus is the per-repository outcome of a validation pass.
type ValidationStatus struct {
	Repo  string
	Found bool // repository carries its own module.json
	Valid bool
}

// ValidateAll structurally validates every module.json found in the
// organization's module repositories. Repositories without their own
// descriptor are reported as not found and do not count as failures:
// validation covers descriptor-carrying repositories only.
func (s *Scanner) ValidateAll(ctx context.Context) ([]ValidationStatus, error) {
	ctx = logging.WithOrg(logging.WithLogger(ctx, s.logger), s.org)

	repos, err := s.client.ListRepositories(ctx, s.org, descriptor.RepoPrefix)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("repository listing failed")
		return nil, nil
	}

	statuses := make([]ValidationStatus, 0, len(repos))
	for _, repo := range repos {
		status := ValidationStatus{Repo: repo.Name}

		content, found := s.client.FetchFile(ctx, s.org, repo.Name, descriptor.FileName, descriptor.DefaultBranch)
		if found {
			status.Found = true
			status.Valid = validate.Module([]byte(content), repo.Name, s.logger)
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// AllValid reports whether every found descriptor passed validation.
func AllValid(statuses []ValidationStatus) bool {
	for _, status := range statuses {
		if status.Found && !status.Valid {
			return false
		}
	}
	return true
}
