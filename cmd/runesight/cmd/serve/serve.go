// Package serve provides the HTTP server command.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/runesight/runesight/cmd/application"
	"github.com/runesight/runesight/internal/server"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the runesight REST API server",
		Long: `Start the runesight REST API server.

Features:
  - Riot ID validation and match history endpoints
  - Per-match performance breakdowns and ranked standings
  - AI match analysis when a Gemini API key is configured
  - In-process caching with per-category TTLs and LRU eviction
  - Rate limiting sized for the Riot development key budget
  - CORS support for web applications
  - Request logging, panic recovery, and graceful shutdown

Environment Variables:
  HTTP_PORT  - Server port (overrides --port)
  HTTP_HOST  - Bind address (overrides --host)`,
		Example: `  # Start on default port 8080
  runesight serve

  # Start on a custom port with CORS restricted to one origin
  runesight serve --port 3000 --cors-origins "https://example.com"

  # Disable rate limiting (production key with a higher budget)
  runesight serve --rate-limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, app)
		},
	}

	// Server configuration flags
	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	// CORS flags
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated, empty allows all)")

	// Rate limiting flags
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per window per IP on upstream-facing routes (0 to disable)")
	cmd.Flags().Duration("rate-limit-window", defaults.RateLimitWindow, "Rate limit window")

	// Timeout flags
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// runServe starts the API server.
func runServe(cmd *cobra.Command, _ []string, app application.Application) error {
	cfg := configFromFlags(cmd)

	// Override with environment variables
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		if p, err := parsePort(envPort); err == nil {
			cfg.Port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	logger := app.Logger()

	riotClient, err := app.Riot()
	if err != nil {
		return fmt.Errorf("creating riot client: %w", err)
	}
	cacheSvc, err := app.Cache()
	if err != nil {
		return fmt.Errorf("creating cache service: %w", err)
	}
	analyzer, err := app.Analyzer(cmd.Context())
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Str("region", riotClient.Region()).
		Str("platform", riotClient.Platform()).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Bool("analysis", analyzer.Enabled()).
		Msg("Starting API server")

	srv, err := server.New(riotClient, cacheSvc, analyzer, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return startServerWithGracefulShutdown(cmd, httpServer, app)
}

// configFromFlags builds a server configuration from parsed command flags.
func configFromFlags(cmd *cobra.Command) server.Config {
	cfg := server.DefaultConfig()

	cfg.Port, _ = cmd.Flags().GetInt("port")
	cfg.Host, _ = cmd.Flags().GetString("host")
	cfg.PathPrefix, _ = cmd.Flags().GetString("prefix")
	cfg.CORSEnabled, _ = cmd.Flags().GetBool("cors")
	cfg.CORSOrigins, _ = cmd.Flags().GetStringSlice("cors-origins")
	cfg.RateLimit, _ = cmd.Flags().GetInt("rate-limit")
	cfg.RateLimitWindow, _ = cmd.Flags().GetDuration("rate-limit-window")
	cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
	cfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
	cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

	return cfg
}

// startServerWithGracefulShutdown starts the server and drains connections
// on shutdown. The command context is cancelled by SIGINT/SIGTERM via the
// signal-aware context created in main.
func startServerWithGracefulShutdown(cmd *cobra.Command, httpServer *http.Server, app application.Application) error {
	logger := app.Logger()
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("Server starting")

		fmt.Printf("🚀 Starting runesight API server on %s\n", httpServer.Addr)
		fmt.Println("   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")

		fmt.Println("\n🛑 Shutting down API server...")

		// Fresh context: the signal context is already cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		fmt.Println("✅ API server stopped gracefully")
		return nil
	}
}

// parsePort parses and validates a TCP port number.
func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("port %d out of range", p)
	}
	return p, nil
}
