package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/riot"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Riot API configuration
	RiotAPIKey   string
	RiotRegion   string
	RiotPlatform string

	// Gemini configuration. An empty API key disables match analysis.
	GeminiAPIKey string
	GeminiModel  string

	// Cache configuration
	CacheMaxSize         int
	CacheCleanupInterval time.Duration

	// CacheTTLs overrides per-category cache lifetimes, keyed by category
	// name (config file key `cache_ttls`).
	CacheTTLs map[string]time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.runesight.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind API keys that commonly live in .env files
	bindAPIKeys()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".runesight")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Riot configuration
		RiotAPIKey:   viper.GetString("riot_api_key"),
		RiotRegion:   viper.GetString("riot_region"),
		RiotPlatform: viper.GetString("riot_platform"),

		// Gemini configuration
		GeminiAPIKey: viper.GetString("gemini_api_key"),
		GeminiModel:  viper.GetString("gemini_model"),

		// Cache configuration
		CacheMaxSize:         viper.GetInt("cache_max_size"),
		CacheCleanupInterval: viper.GetDuration("cache_cleanup_interval"),
		CacheTTLs:            parseTTLs(viper.GetStringMapString("cache_ttls")),

		// Logging configuration. LogLevel stays empty here so the
		// --log-level flag and -v/-q shortcuts keep precedence over the
		// LOG_LEVEL environment variable.
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.RiotRegion == "" {
		config.RiotRegion = riot.DefaultRegion
	}
	if config.RiotPlatform == "" {
		config.RiotPlatform = riot.DefaultPlatform
	}
	if config.CacheMaxSize == 0 {
		config.CacheMaxSize = cache.DefaultMaxSize
	}
	if config.CacheCleanupInterval == 0 {
		config.CacheCleanupInterval = cache.DefaultCleanupInterval
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys explicitly binds API key environment variables to Viper.
func bindAPIKeys() {
	apiKeys := []string{
		"RIOT_API_KEY",
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
	}

	for _, key := range apiKeys {
		if err := viper.BindEnv(key); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// parseTTLs converts string durations from the config file into a TTL
// override table. Unparseable values are skipped with a warning so a typo
// never takes the service down.
func parseTTLs(raw map[string]string) map[string]time.Duration {
	if len(raw) == 0 {
		return nil
	}

	ttls := make(map[string]time.Duration, len(raw))
	for category, value := range raw {
		d, err := time.ParseDuration(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid TTL %q for cache category %s, using default\n", value, category)
			continue
		}
		ttls[category] = d
	}
	return ttls
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
