// Package server provides the HTTP server for the RuneSight API.
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/internal/analysis"
	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/riot"
	"github.com/runesight/runesight/internal/server/middleware"
	"github.com/runesight/runesight/pkg/errors"
	"github.com/runesight/runesight/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	riot      *riot.Client
	cache     *cache.Service
	analyzer  *analysis.Analyzer
	logger    *zerolog.Logger
	config    Config
	limiter   *middleware.RateLimiter
	startTime time.Time
}

// New creates a new server instance with the given dependencies. The analyzer
// may be nil; analysis routes then answer 503 while everything else serves
// normally.
func New(riotClient *riot.Client, cacheSvc *cache.Service, analyzer *analysis.Analyzer, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if riotClient == nil {
		return nil, errors.NewConfigError("server", "riot client is required", nil)
	}
	if cacheSvc == nil {
		return nil, errors.NewConfigError("server", "cache service is required", nil)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Server{
		riot:      riotClient,
		cache:     cacheSvc,
		analyzer:  analyzer,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// Close releases background resources held by the server, stopping the
// rate limiter's visitor sweep. Safe to call multiple times.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
