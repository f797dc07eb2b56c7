// Package handlers provides HTTP request handlers for the RuneSight API.
// Handlers log through the request-scoped logger that the logging middleware
// attaches to the context.
package handlers

import (
	"github.com/runesight/runesight/internal/analysis"
	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/riot"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	riot     *riot.Client
	cache    *cache.Service
	analyzer *analysis.Analyzer
}

// New creates a new Handlers instance. analyzer may be nil when no completion
// model is configured.
func New(riotClient *riot.Client, cacheSvc *cache.Service, analyzer *analysis.Analyzer) *Handlers {
	return &Handlers{
		riot:     riotClient,
		cache:    cacheSvc,
		analyzer: analyzer,
	}
}

// routedClient resolves the riot client for optional region/platform query
// overrides.
func (h *Handlers) routedClient(region, platform string) (*riot.Client, error) {
	return h.riot.WithRouting(region, platform)
}
