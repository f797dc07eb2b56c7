package server

import "time"

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Rate limiting for riot and analysis routes. RateLimit is requests per
	// RateLimitWindow per client IP (0 to disable).
	RateLimit       int
	RateLimitWindow time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The rate limit
// mirrors the Riot development key budget of 20 requests per minute so a
// single client cannot exhaust the upstream quota.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            8080,
		PathPrefix:      "/api/v1",
		CORSEnabled:     true,
		CORSOrigins:     []string{},
		RateLimit:       20,
		RateLimitWindow: time.Minute,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
	}
}
