// Package application provides the application interface for runesight commands.
//
// The Application interface defines the contract between the application layer
// and command implementations, enabling dependency injection and testability.
// Commands accept this interface rather than the concrete App type, so tests
// can substitute lightweight fakes.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/internal/analysis"
	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/riot"
)

// Application provides the dependencies that commands need. The App struct
// from cmd/runesight/app implements this interface.
//
// Thread Safety: all methods must be safe for concurrent access.
type Application interface {
	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// Cache returns the shared cache service (lazy-initialized, singleton).
	Cache() (*cache.Service, error)

	// Riot returns the Riot API client (lazy-initialized, singleton).
	Riot() (*riot.Client, error)

	// Analyzer returns the match analyzer (lazy-initialized, singleton).
	// When no Gemini API key is configured the analyzer is returned in a
	// disabled state and analysis endpoints report service unavailable.
	Analyzer(ctx context.Context) (*analysis.Analyzer, error)
}
