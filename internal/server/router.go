package server

import (
	"net/http"
	"strings"

	"github.com/runesight/runesight/internal/server/handlers"
	"github.com/runesight/runesight/internal/server/middleware"
	"github.com/runesight/runesight/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.riot, s.cache, s.analyzer)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Riot endpoints, rate limited to protect the upstream quota
	limited := s.rateLimited()

	mux.Handle(prefix+"/riot/validate", limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleValidateRiotID(w, r)
	})))

	mux.Handle(prefix+"/riot/matches/", limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		riotID := extractPathParam(r.URL.Path, prefix+"/riot/matches/")
		if riotID == "" {
			response.BadRequest(w, "RiotID required", "Use /riot/matches/{gameName}%23{tagLine}")
			return
		}
		h.HandleMatchHistory(w, r, riotID)
	})))

	mux.Handle(prefix+"/riot/match/", limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		matchID := extractPathParam(r.URL.Path, prefix+"/riot/match/")
		if matchID == "" {
			response.BadRequest(w, "Match ID required", "Use /riot/match/{matchID}")
			return
		}
		h.HandleMatchDetails(w, r, matchID)
	})))

	mux.Handle(prefix+"/riot/ranked/", limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		riotID := extractPathParam(r.URL.Path, prefix+"/riot/ranked/")
		if riotID == "" {
			response.BadRequest(w, "RiotID required", "Use /riot/ranked/{gameName}%23{tagLine}")
			return
		}
		h.HandleRankedEntries(w, r, riotID)
	})))

	// Analysis endpoints share the riot rate budget
	mux.Handle(prefix+"/analysis/match/", limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		matchID := extractPathParam(r.URL.Path, prefix+"/analysis/match/")
		if matchID == "" {
			response.BadRequest(w, "Match ID required", "Use /analysis/match/{matchID}")
			return
		}
		h.HandleAnalyzeMatch(w, r, matchID)
	})))

	// Cache administration
	mux.HandleFunc(prefix+"/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleCacheStats(w, r)
	})

	mux.HandleFunc(prefix+"/cache/clear", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleCacheClear(w, r)
	})

	mux.HandleFunc(prefix+"/cache/invalidate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleCacheInvalidate(w, r)
	})
}

// rateLimited returns the middleware guarding upstream-facing routes, or a
// pass-through when rate limiting is disabled.
func (s *Server) rateLimited() func(http.Handler) http.Handler {
	if s.config.RateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if s.limiter == nil {
		window := s.config.RateLimitWindow
		if window <= 0 {
			window = DefaultConfig().RateLimitWindow
		}
		s.limiter = middleware.NewRateLimiter(s.config.RateLimit, window, s.logger)
	}
	return middleware.RateLimit(s.limiter)
}

// applyMiddleware wraps handler with the outer middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// extractPathParam extracts the first path segment after the prefix.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
