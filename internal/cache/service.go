package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/pkg/logging"
)

// Default cache tuning. TTLs track how volatile the underlying Riot resource
// is, not caller convenience: account identity is near-immutable, match lists
// change every game, completed match details never change once recorded.
const (
	DefaultMaxSize         = 1000
	DefaultCleanupInterval = 5 * time.Minute
)

// Well-known entry categories. Keys are namespaced as
// "{category}:{scope}:{discriminator}" by callers.
const (
	CategoryAccount      = "account"
	CategorySummoner     = "summoner"
	CategoryMatchIDs     = "match_ids"
	CategoryMatchDetails = "match_details"
	CategoryLeague       = "league"
	CategoryAnalysis     = "analysis"
	CategoryDefault      = "default"
)

// DefaultTTLs returns the default per-category entry lifetimes.
func DefaultTTLs() map[string]time.Duration {
	return map[string]time.Duration{
		CategoryAccount:      24 * time.Hour,
		CategorySummoner:     time.Hour,
		CategoryMatchIDs:     5 * time.Minute,
		CategoryMatchDetails: time.Hour,
		CategoryLeague:       30 * time.Minute,
		CategoryAnalysis:     30 * time.Minute,
		CategoryDefault:      10 * time.Minute,
	}
}

// Config holds cache service configuration.
type Config struct {
	// MaxSize is the entry-count capacity before LRU eviction. Must be > 0.
	MaxSize int

	// CleanupInterval throttles the periodic sweep of expired entries.
	CleanupInterval time.Duration

	// TTLs overrides the per-category default lifetimes. Missing categories
	// fall back to DefaultTTLs.
	TTLs map[string]time.Duration

	// Logger for cache events. Defaults to the package logger.
	Logger *zerolog.Logger
}

// Stats is the cache statistics snapshot served verbatim by the
// administrative stats endpoint.
type Stats struct {
	TotalEntries       int            `json:"total_entries"`
	MaxSize            int            `json:"max_size"`
	UtilizationPercent float64        `json:"utilization_percent"`
	Hits               uint64         `json:"hits"`
	Misses             uint64         `json:"misses"`
	HitRatePercent     float64        `json:"hit_rate_percent"`
	Evictions          uint64         `json:"evictions"`
	Expirations        uint64         `json:"expirations"`
	EntriesByCategory  map[string]int `json:"entries_by_category"`
	LastCleanup        time.Time      `json:"last_cleanup"`
}

// Service is the operational layer over the entry store: category-aware TTL
// resolution, hit/miss accounting, throttled expiry sweeps, and prefix
// invalidation. One Service is constructed at process startup and passed to
// every collaborator that needs it.
//
// A single mutex guards the entries map and the statistics counters as one
// unit: a lost counter update corrupts monitoring, a torn map read corrupts
// correctness. Get and Set never perform I/O under the lock.
type Service struct {
	mu    sync.Mutex
	store *store

	ttls            map[string]time.Duration
	cleanupInterval time.Duration

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
	lastCleanup time.Time

	logger *zerolog.Logger
	now    func() time.Time
}

// New creates a cache service. It fails fast on a non-positive MaxSize;
// everything else falls back to defaults.
func New(cfg Config) (*Service, error) {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	st, err := newStore(cfg.MaxSize)
	if err != nil {
		return nil, err
	}

	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	ttls := DefaultTTLs()
	for category, ttl := range cfg.TTLs {
		ttls[category] = ttl
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	s := &Service{
		store:           st,
		ttls:            ttls,
		cleanupInterval: cfg.CleanupInterval,
		lastCleanup:     time.Now(),
		logger:          logger,
		now:             time.Now,
	}

	logger.Info().
		Int("max_size", cfg.MaxSize).
		Dur("cleanup_interval", cfg.CleanupInterval).
		Msg("Cache service initialized")

	return s, nil
}

// Get returns the cached value for key if present and unexpired.
// Every call increments exactly one of hits or misses; a lazily detected
// expiry additionally increments expirations.
func (s *Service) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, expired := s.store.get(key, s.now())
	if expired {
		s.expirations++
	}
	if !ok {
		s.misses++
		return nil, false
	}
	s.hits++
	return value, true
}

// Set stores a value under the category's default TTL. An empty or unknown
// category resolves to the "default" lifetime.
func (s *Service) Set(key string, value any, category string) {
	s.SetWithTTL(key, value, s.ttlFor(category))
}

// SetWithTTL stores a value with an explicit TTL, overriding category
// defaults. Triggers the throttled expiry sweep as a side effect, which
// reclaims write-once keys that lazy expiration alone would never touch.
func (s *Service) SetWithTTL(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.store.set(key, value, ttl, now) {
		s.evictions++
		s.logger.Debug().Str("key", key).Msg("Evicted LRU cache entry")
	}
	s.maybeCleanupLocked(now)
}

// Delete removes a single entry, reporting whether it was present.
func (s *Service) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.delete(key)
}

// Clear removes all entries. Statistics counters are cumulative for the
// process lifetime and survive a clear.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.clear()
	s.logger.Info().Msg("Cache cleared")
}

// InvalidatePrefix removes every entry whose key starts with prefix and
// returns the count removed. Used for targeted invalidation, e.g. clearing
// all "match_details:" entries without dropping the whole cache.
func (s *Service) InvalidatePrefix(prefix string) int {
	s.mu.Lock()
	removed := s.store.deletePrefix(prefix)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info().
			Str("prefix", prefix).
			Int("removed", removed).
			Msg("Invalidated cache entries by prefix")
	}
	return removed
}

// Len returns the number of live entries.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.len()
}

// Stats returns a snapshot of cache statistics.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.store.len()
	requests := s.hits + s.misses

	hitRate := 0.0
	if requests > 0 {
		hitRate = float64(s.hits) / float64(requests) * 100
	}

	byCategory := make(map[string]int)
	for key := range s.store.entries {
		byCategory[categoryOf(key)]++
	}

	return Stats{
		TotalEntries:       total,
		MaxSize:            s.store.maxSize,
		UtilizationPercent: round2(float64(total) / float64(s.store.maxSize) * 100),
		Hits:               s.hits,
		Misses:             s.misses,
		HitRatePercent:     round2(hitRate),
		Evictions:          s.evictions,
		Expirations:        s.expirations,
		EntriesByCategory:  byCategory,
		LastCleanup:        s.lastCleanup,
	}
}

// maybeCleanupLocked sweeps expired entries if the cleanup interval has
// elapsed. Caller must hold s.mu.
func (s *Service) maybeCleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	removed := s.store.removeExpired(now)
	s.expirations += uint64(removed)
	s.lastCleanup = now

	if removed > 0 {
		s.logger.Info().
			Int("removed", removed).
			Msg("Cleaned up expired cache entries")
	}
}

// ttlFor resolves a category to its configured lifetime.
func (s *Service) ttlFor(category string) time.Duration {
	if ttl, ok := s.ttls[category]; ok {
		return ttl
	}
	return s.ttls[CategoryDefault]
}

// categoryOf extracts the category prefix from a namespaced key.
func categoryOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return "unknown"
}

// round2 rounds to two decimal places for stable stats output.
func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
