package cardcycle

import (
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheConfig configures the memoization layer.
type CacheConfig struct {
	// Enabled determines if caching is active.
	Enabled bool

	// PeriodTTL is the TTL for cached statement periods (default: 1 hour).
	PeriodTTL time.Duration

	// PostingTTL is the TTL for cached posting previews (default: 30
	// minutes). Posting results are queried more often and age faster
	// relative to "now", hence the shorter expiry.
	PostingTTL time.Duration
}

// Config holds calculator configuration. The zero value yields an
// uncached calculator with noop logging and metrics.
type Config struct {
	// Cache overrides the cache implementation. Takes precedence over
	// CacheConfig when non-nil.
	Cache Cache

	// CacheConfig enables and tunes the built-in in-process cache.
	CacheConfig *CacheConfig

	// Logger is used for structured logging (default: NoopLogger).
	Logger Logger

	// Metrics is used for tracking calculator operations (default:
	// NoopMetrics).
	Metrics Metrics

	// Clock supplies "now" for cache expiry (default: system clock).
	Clock Clock

	// MinYear and MaxYear bound the dates the checked calendar math
	// accepts (defaults: 1900 and 2100).
	MinYear int
	MaxYear int
}

// Calculator computes statement periods and posting previews for
// revolving-credit billing configurations. All state it owns is the
// optional memo cache, scoped to this instance rather than the process,
// so tests and tenants stay isolated. Safe for concurrent use.
type Calculator struct {
	cal        Calendar
	cache      Cache
	periodTTL  time.Duration
	postingTTL time.Duration
	logger     Logger
	metrics    Metrics
	group      singleflight.Group
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.Logger == nil {
		cfg.Logger = &NoopLogger{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &NoopMetrics{}
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.MinYear == 0 {
		cfg.MinYear = DefaultMinYear
	}
	if cfg.MaxYear == 0 {
		cfg.MaxYear = DefaultMaxYear
	}
	if cfg.MinYear > cfg.MaxYear {
		return nil, ErrInvalidYearBounds
	}

	periodTTL := time.Hour
	postingTTL := 30 * time.Minute

	cache := cfg.Cache
	if cache == nil {
		if cfg.CacheConfig != nil && cfg.CacheConfig.Enabled {
			mem := NewMemoryCacheWithClock(cfg.Clock)
			mem.SetLogger(cfg.Logger)
			cache = mem
		} else {
			cache = NewNoopCache()
		}
	}
	if cfg.CacheConfig != nil {
		if cfg.CacheConfig.PeriodTTL > 0 {
			periodTTL = cfg.CacheConfig.PeriodTTL
		}
		if cfg.CacheConfig.PostingTTL > 0 {
			postingTTL = cfg.CacheConfig.PostingTTL
		}
	}

	return &Calculator{
		cal:        Calendar{MinYear: cfg.MinYear, MaxYear: cfg.MaxYear, Logger: cfg.Logger},
		cache:      cache,
		periodTTL:  periodTTL,
		postingTTL: postingTTL,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}, nil
}

// StatementPeriod computes the statement period containing ref. Always
// returns a usable period: invalid configuration and out-of-bounds dates
// take the approximate fallback path rather than failing.
func (c *Calculator) StatementPeriod(cfg AccountConfig, ref time.Time) StatementPeriod {
	key := KeyFor(cfg, ref)
	if p, ok := c.cache.GetPeriod(key); ok {
		c.metrics.RecordCacheHit("period")
		return p
	}
	c.metrics.RecordCacheMiss("period")

	// Collapse concurrent identical computations. A lost cache update is
	// harmless since every writer computes an identical value.
	v, _, _ := c.group.Do("period|"+key.String(), func() (interface{}, error) {
		started := time.Now()
		p, fellBack := statementPeriod(c.cal, cfg, ref)
		c.observe("period", started, fellBack, cfg)
		c.cache.SetPeriod(key, p, c.periodTTL)
		return p, nil
	})
	return v.(StatementPeriod)
}

// PostDate maps a purchase date to the due date it posts to.
func (c *Calculator) PostDate(purchase time.Time, cfg AccountConfig) time.Time {
	return c.PostingPreview(purchase, cfg).PostDate
}

// PostingPreview computes the full posting preview for a purchase date.
func (c *Calculator) PostingPreview(purchase time.Time, cfg AccountConfig) PostingPreview {
	key := KeyFor(cfg, purchase)
	if p, ok := c.cache.GetPosting(key); ok {
		c.metrics.RecordCacheHit("posting")
		return p
	}
	c.metrics.RecordCacheMiss("posting")

	v, _, _ := c.group.Do("posting|"+key.String(), func() (interface{}, error) {
		started := time.Now()
		p, fellBack := postingPreview(c.cal, purchase, cfg)
		c.observe("posting", started, fellBack, cfg)
		c.cache.SetPosting(key, p, c.postingTTL)
		return p, nil
	})
	return v.(PostingPreview)
}

// ValidateConfig reports every violated configuration rule, or nil.
func (c *Calculator) ValidateConfig(cfg AccountConfig) error {
	return cfg.Validate()
}

// ResolveDefaults fills in the optional due and best-purchase days.
func (c *Calculator) ResolveDefaults(cfg AccountConfig) ResolvedConfig {
	return cfg.ResolveDefaults()
}

// ClearCache drops every memoized result.
func (c *Calculator) ClearCache() {
	c.cache.Clear()
}

// ClearCacheFor drops the memoized results scoped to one entity id.
// Callers invoke this when an account's billing configuration changes.
func (c *Calculator) ClearCacheFor(entityID string) {
	c.cache.InvalidateEntity(entityID)
}

// CacheStats returns statistics from the underlying cache.
func (c *Calculator) CacheStats() CacheStats {
	return c.cache.Stats()
}

func (c *Calculator) observe(op string, started time.Time, fellBack bool, cfg AccountConfig) {
	c.metrics.RecordCalculation(op, time.Since(started), fellBack)
	if fellBack {
		c.metrics.RecordFallback(op)
		c.logger.Warn("using fallback "+op+" calculation",
			Field{"entityId", cfg.EntityID},
			Field{"closingDay", cfg.ClosingDay},
		)
	}
}
