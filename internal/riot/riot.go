// Package riot provides the Riot Games API client used to fetch account,
// summoner, match, and league data. Every read goes through the in-process
// cache first; remote fetches happen only on a miss and always outside the
// cache's lock. Results are cached under category-namespaced keys so the
// cache can apply per-category lifetimes and prefix invalidation.
package riot

import (
	"github.com/rs/zerolog"

	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/transport"
	"github.com/runesight/runesight/pkg/errors"
	"github.com/runesight/runesight/pkg/logging"
)

// Config holds Riot client configuration.
type Config struct {
	// APIKey is the Riot developer API key. Required.
	APIKey string

	// Region is the regional routing value (AMERICAS, ASIA, EUROPE, SEA)
	// used for account and match endpoints.
	Region string

	// Platform is the platform routing value (NA1, EUW1, KR, ...) used for
	// summoner and league endpoints.
	Platform string

	// Cache is the shared cache service. Required.
	Cache *cache.Service

	// Logger for client events. Defaults to the package logger.
	Logger *zerolog.Logger

	// RegionalURL and PlatformURL override the routing-table hosts.
	// Primarily useful to point the client at a local test server.
	RegionalURL string
	PlatformURL string
}

// Client is a Riot API client with read-through caching.
type Client struct {
	transport *transport.Client
	cache     *cache.Service
	region    string
	platform  string

	regionalBase string
	platformBase string

	logger *zerolog.Logger
}

// New creates a Riot API client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError("riot", "API key is required", errors.ErrAPIKeyRequired)
	}
	if cfg.Cache == nil {
		return nil, errors.NewConfigError("riot", "cache service is required", nil)
	}

	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Platform == "" {
		cfg.Platform = DefaultPlatform
	}

	regionalBase := cfg.RegionalURL
	if regionalBase == "" {
		host, ok := RegionalRouting[cfg.Region]
		if !ok {
			return nil, errors.NewValidationError("region", cfg.Region, "unknown regional routing value")
		}
		regionalBase = "https://" + host
	}

	platformBase := cfg.PlatformURL
	if platformBase == "" {
		host, ok := PlatformRouting[cfg.Platform]
		if !ok {
			return nil, errors.NewValidationError("platform", cfg.Platform, "unknown platform routing value")
		}
		platformBase = "https://" + host
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		transport:    transport.New(&transport.HeaderAuth{Header: "X-Riot-Token"}, cfg.APIKey),
		cache:        cfg.Cache,
		region:       cfg.Region,
		platform:     cfg.Platform,
		regionalBase: regionalBase,
		platformBase: platformBase,
		logger:       logger,
	}, nil
}

// Region returns the client's regional routing value.
func (c *Client) Region() string {
	return c.region
}

// Platform returns the client's platform routing value.
func (c *Client) Platform() string {
	return c.platform
}

// WithRouting returns a client routed to the given region and platform.
// Empty values keep the current routing. The returned client shares this
// client's transport and cache, so entries cached for one routing are visible
// to all (keys are already namespaced by region and platform).
func (c *Client) WithRouting(region, platform string) (*Client, error) {
	if (region == "" || region == c.region) && (platform == "" || platform == c.platform) {
		return c, nil
	}

	derived := *c
	if region != "" && region != c.region {
		host, ok := RegionalRouting[region]
		if !ok {
			return nil, errors.NewValidationError("region", region, "unknown regional routing value")
		}
		derived.region = region
		derived.regionalBase = "https://" + host
	}
	if platform != "" && platform != c.platform {
		host, ok := PlatformRouting[platform]
		if !ok {
			return nil, errors.NewValidationError("platform", platform, "unknown platform routing value")
		}
		derived.platform = platform
		derived.platformBase = "https://" + host
	}
	return &derived, nil
}
