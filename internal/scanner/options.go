package scanner

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/infotecha/modhub/internal/github"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithClient sets the remote repository client.
func WithClient(client *github.Client) Option {
	return func(s *Scanner) {
		s.client = client
	}
}

// WithCacheTTL overrides the lookup cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Scanner) {
		s.cache = newLookupCache(ttl)
	}
}

// WithRegistryPath sets where the legacy central registry document is read from.
func WithRegistryPath(path string) Option {
	return func(s *Scanner) {
		s.registryPath = path
	}
}

// WithLogger sets the scanner logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}
