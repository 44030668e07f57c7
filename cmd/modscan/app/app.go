// Package app provides the application context and dependency management
// for the modscan CLI. It centralizes configuration, logging, and the
// scanner instance behind a single dependency-injected App value.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/infotecha/modhub/internal/scanner"
	"github.com/infotecha/modhub/pkg/errors"
)

// App represents the modscan application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Scanner instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	scanner *scanner.Scanner

	// Root command flags
	moduleName   string
	validateOnly bool
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, &errors.ConfigError{Component: "modscan", Message: "load config", Err: err}
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Scanner returns the scanner instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Scanner() *scanner.Scanner {
	a.mu.RLock()
	if a.scanner != nil {
		s := a.scanner
		a.mu.RUnlock()
		return s
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.scanner != nil {
		return a.scanner
	}

	a.scanner = scanner.New(a.config.Org, a.buildScannerOptions()...)
	return a.scanner
}

// buildScannerOptions constructs scanner options from the app configuration.
func (a *App) buildScannerOptions() []scanner.Option {
	opts := []scanner.Option{
		scanner.WithLogger(a.logger),
	}

	if a.config.RegistryPath != "" {
		opts = append(opts, scanner.WithRegistryPath(a.config.RegistryPath))
	}
	if a.config.CacheTTL > 0 {
		opts = append(opts, scanner.WithCacheTTL(a.config.CacheTTL))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithScanner sets a custom scanner instance (useful for testing).
func WithScanner(s *scanner.Scanner) Option {
	return func(a *App) error {
		a.scanner = s
		return nil
	}
}
