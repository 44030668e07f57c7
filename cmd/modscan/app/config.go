package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/infotecha/modhub/internal/registry"
	"github.com/infotecha/modhub/internal/scanner"
	"github.com/infotecha/modhub/pkg/descriptor"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Scan configuration
	Org          string
	RegistryPath string
	CacheTTL     time.Duration

	// Logging configuration. LogLevel holds an explicit --log-level flag
	// value; envLogLevel holds the LOG_LEVEL environment value so flag
	// shortcuts (-v/-q) can still take precedence over the environment.
	LogLevel    string
	LogFormat   string
	LogOutput   string
	envLogLevel string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.modscan.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind credentials that might live in .env files
	bindTokens()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".modscan")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Scan configuration
		Org:          viper.GetString("github_org"),
		RegistryPath: viper.GetString("registry_path"),
		CacheTTL:     viper.GetDuration("cache_ttl"),

		// Logging configuration
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
		envLogLevel: viper.GetString("log_level"),
	}

	// Set defaults
	if config.Org == "" {
		config.Org = descriptor.DefaultOrg
	}
	if config.RegistryPath == "" {
		config.RegistryPath = registry.DefaultPath
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = scanner.DefaultCacheTTL
	}

	return config, nil
}

// ReloadFromFile re-reads configuration from an explicit config file. Flags
// are parsed after LoadConfig has already run, so a --config path only takes
// effect here. flagSet reports whether a flag was given on the command line;
// flag values keep precedence over the file.
func (c *Config) ReloadFromFile(path string, flagSet func(name string) bool) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()

	if !flagSet("org") {
		if org := viper.GetString("github_org"); org != "" {
			c.Org = org
		}
	}
	if !flagSet("registry") {
		if registryPath := viper.GetString("registry_path"); registryPath != "" {
			c.RegistryPath = registryPath
		}
	}
	if !flagSet("format") && !flagSet("output") {
		if format := viper.GetString("format"); format != "" {
			c.Format = format
		}
	}
	if ttl := viper.GetDuration("cache_ttl"); ttl > 0 {
		c.CacheTTL = ttl
	}

	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindTokens explicitly binds credential environment variables to Viper.
func bindTokens() {
	tokens := []string{
		"GITHUB_TOKEN",
		"LOG_LEVEL",
	}

	for _, key := range tokens {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
