// Package scanner orchestrates module discovery: per-repository resolution of
// descriptors with central-registry fallback, whole-organization scans with
// partial-failure tolerance, and assembly of the unified catalog.
package scanner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/infotecha/modhub/internal/github"
	"github.com/infotecha/modhub/internal/registry"
	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/errors"
	"github.com/infotecha/modhub/pkg/logging"
)

// NoConfigurationFound is the terminal failure reason for a repository with
// neither its own descriptor nor a central registry entry.
const NoConfigurationFound = "No configuration found"

// Scanner resolves modules for one organization. Each Scanner owns its lookup
// cache, so independent instances are isolated — there is no process-wide
// cache state.
type Scanner struct {
	org          string
	client       *github.Client
	cache        *lookupCache
	registryPath string
	logger       *zerolog.Logger

	// registry is loaded lazily on the first fallback lookup and reused.
	registry    *registry.Registry
	registryErr error
	loaded      bool
}

// RepoResult pairs a repository with its resolution outcome.
type RepoResult struct {
	Repo   string
	Result descriptor.ScanResult
}

// New creates a Scanner for an organization.
func New(org string, opts ...Option) *Scanner {
	s := &Scanner{
		org:          org,
		cache:        newLookupCache(DefaultCacheTTL),
		registryPath: registry.DefaultPath,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = github.New(github.WithLogger(s.logger))
	}
	return s
}

// Resolve runs the per-repository state machine: cache check, then the
// repository's own descriptor, then the central registry fallback. Failures
// are terminal outcomes, not errors; the error return is reserved for fatal
// conditions such as a malformed central registry.
func (s *Scanner) Resolve(ctx context.Context, repo string) (descriptor.ScanResult, error) {
	ctx = logging.WithRepo(logging.WithLogger(ctx, s.logger), repo)

	if result, ok := s.cache.Get(repo); ok {
		logging.Ctx(ctx).Debug().Msg("cache hit")
		return result, nil
	}

	if result, ok := s.fetchOwn(ctx, repo); ok {
		// Own descriptors are cached; fallback results are not, so edits to
		// the central registry stay visible immediately.
		s.cache.Put(repo, result)
		return result, nil
	}

	return s.fetchFallback(ctx, repo)
}

// ResolveModule resolves by module name, deriving the conventional repository
// name unless the name already is one.
func (s *Scanner) ResolveModule(ctx context.Context, name string) (descriptor.ScanResult, error) {
	repo := name
	if !strings.HasPrefix(name, descriptor.RepoPrefix) {
		repo = descriptor.RepositoryFor(name)
	}
	return s.Resolve(ctx, repo)
}

// fetchOwn fetches and parses the repository's own descriptor. A missing or
// unparsable file reports ok=false so resolution falls through to the
// central registry.
func (s *Scanner) fetchOwn(ctx context.Context, repo string) (descriptor.ScanResult, bool) {
	content, found := s.client.FetchFile(ctx, s.org, repo, descriptor.FileName, descriptor.DefaultBranch)
	if !found {
		return descriptor.ScanResult{}, false
	}

	var m descriptor.Module
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("descriptor is not valid JSON, trying central registry")
		return descriptor.ScanResult{}, false
	}

	ctx = logging.WithSource(ctx, string(descriptor.SourceModuleJSON))
	logging.Ctx(logging.WithModule(ctx, m.Name)).Debug().Msg("resolved descriptor")
	return descriptor.OwnDescriptor(&m), true
}

// fetchFallback searches the central registry for an entry owned by the
// repository.
func (s *Scanner) fetchFallback(ctx context.Context, repo string) (descriptor.ScanResult, error) {
	reg, err := s.centralRegistry()
	if err != nil {
		return descriptor.ScanResult{}, err
	}

	if entry, ok := reg.FindByContentRepo(repo); ok {
		ctx = logging.WithSource(ctx, string(descriptor.SourceCentral))
		logging.Ctx(logging.WithModule(ctx, entry.Name)).Debug().Msg("resolved descriptor")
		copied := *entry
		return descriptor.CentralEntry(&copied), nil
	}

	return descriptor.Failure(NoConfigurationFound), nil
}

// centralRegistry loads the registry document once. A missing file is an
// empty registry (every fallback then fails per-module); a malformed file is
// fatal, since every fallback lookup would be wrong.
func (s *Scanner) centralRegistry() (*registry.Registry, error) {
	if s.loaded {
		return s.registry, s.registryErr
	}
	s.loaded = true

	reg, err := registry.Load(s.registryPath)
	if err != nil {
		var ioErr *errors.IOError
		if errors.AsIOError(err, &ioErr) {
			s.logger.Warn().Err(err).Str("path", s.registryPath).Msg("central registry unavailable, fallback disabled")
			s.registry = &registry.Registry{}
			return s.registry, nil
		}
		s.registryErr = err
		return nil, err
	}

	s.registry = reg
	return reg, nil
}

// ScanAll lists the organization's module repositories and resolves each one
// sequentially, one fully-resolved module at a time. A single module's
// failure is recorded and skipped; it never aborts the remaining scan.
func (s *Scanner) ScanAll(ctx context.Context) ([]RepoResult, error) {
	ctx = logging.WithOrg(logging.WithLogger(ctx, s.logger), s.org)

	repos, err := s.client.ListRepositories(ctx, s.org, descriptor.RepoPrefix)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("repository listing failed")
		return nil, nil
	}

	results := make([]RepoResult, 0, len(repos))
	for _, repo := range repos {
		result, err := s.Resolve(ctx, repo.Name)
		if err != nil {
			return nil, err
		}
		results = append(results, RepoResult{Repo: repo.Name, Result: result})
	}

	s.logScanSummary(ctx, results)
	return results, nil
}

// logScanSummary emits one per-scan accounting line.
func (s *Scanner) logScanSummary(ctx context.Context, results []RepoResult) {
	var own, central, skipped int
	for _, r := range results {
		switch {
		case !r.Result.Success:
			skipped++
		case r.Result.Source == descriptor.SourceCentral:
			central++
		default:
			own++
		}
	}
	logging.Ctx(ctx).Info().
		Int("total", len(results)).
		Int("module_json", own).
		Int("central", central).
		Int("skipped", skipped).
		Msg("scan complete")
}
