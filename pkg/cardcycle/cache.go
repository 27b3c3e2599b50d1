package cardcycle

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// CacheKey identifies one memoized result. The resolved due day is part of
// the key (with -1 for an absent DueDay) so editing only the due day can
// never serve a stale posting entry, even if the caller forgets to
// invalidate. Date is the reference or purchase date truncated to day.
type CacheKey struct {
	EntityID   string
	ClosingDay int
	DueDay     int
	Date       string
}

// KeyFor builds the cache key for a config and date.
func KeyFor(cfg AccountConfig, date time.Time) CacheKey {
	due := -1
	if cfg.DueDay != nil {
		due = *cfg.DueDay
	}
	return CacheKey{
		EntityID:   cfg.EntityID,
		ClosingDay: cfg.ClosingDay,
		DueDay:     due,
		Date:       midnightUTC(date).Format("2006-01-02"),
	}
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s|%d|%d|%s", k.EntityID, k.ClosingDay, k.DueDay, k.Date)
}

// Cache defines the interface for memoizing computed periods and posting
// previews. Caching is never required for correctness: every cached value
// is reproducible by recomputation, and disabling the cache must not
// change any returned value, only latency.
type Cache interface {
	// GetPeriod retrieves a cached statement period.
	GetPeriod(key CacheKey) (StatementPeriod, bool)

	// SetPeriod stores a statement period with TTL.
	SetPeriod(key CacheKey, p StatementPeriod, ttl time.Duration)

	// GetPosting retrieves a cached posting preview.
	GetPosting(key CacheKey) (PostingPreview, bool)

	// SetPosting stores a posting preview with TTL.
	SetPosting(key CacheKey, p PostingPreview, ttl time.Duration)

	// InvalidateEntity removes every entry scoped to one entity id.
	// Callers signal this when an account's configuration changes.
	InvalidateEntity(entityID string)

	// Clear removes all entries.
	Clear()

	// Stats returns cache statistics.
	Stats() CacheStats
}

// CacheStats holds cache performance statistics.
type CacheStats struct {
	PeriodHits    int64
	PeriodMisses  int64
	PostingHits   int64
	PostingMisses int64
	Evictions     int64
	Size          int
}

// NoopCache is a cache implementation that does nothing. Used when
// caching is disabled.
type NoopCache struct{}

// NewNoopCache creates a new no-op cache.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) GetPeriod(_ CacheKey) (StatementPeriod, bool)            { return StatementPeriod{}, false }
func (c *NoopCache) SetPeriod(_ CacheKey, _ StatementPeriod, _ time.Duration) {}
func (c *NoopCache) GetPosting(_ CacheKey) (PostingPreview, bool)            { return PostingPreview{}, false }
func (c *NoopCache) SetPosting(_ CacheKey, _ PostingPreview, _ time.Duration) {}
func (c *NoopCache) InvalidateEntity(_ string)                               {}
func (c *NoopCache) Clear()                                                  {}
func (c *NoopCache) Stats() CacheStats                                       { return CacheStats{} }

type periodEntry struct {
	value      StatementPeriod
	expiration time.Time
}

type postingEntry struct {
	value      PostingPreview
	expiration time.Time
}

// MemoryCache implements Cache with mutex-guarded in-process maps.
// Expired entries are evicted opportunistically: a random fraction of
// writes scans a bounded sample of entries, so cleanup cost stays bounded
// without a background timer or scheduler. Map iteration order in Go is
// randomized, which is what makes the bounded scan a random sample.
type MemoryCache struct {
	mu       sync.Mutex
	periods  map[CacheKey]periodEntry
	postings map[CacheKey]postingEntry
	clock    Clock
	logger   Logger

	// sweepEvery gates the sweep to roughly one in N writes;
	// sweepScanLimit bounds how many entries one sweep inspects per map.
	sweepEvery     int
	sweepScanLimit int

	periodHits    int64
	periodMisses  int64
	postingHits   int64
	postingMisses int64
	evictions     int64
}

// NewMemoryCache creates an in-process cache using the system clock.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(SystemClock())
}

// NewMemoryCacheWithClock creates an in-process cache with an injectable
// clock, so expiry is testable without sleeping.
func NewMemoryCacheWithClock(clock Clock) *MemoryCache {
	if clock == nil {
		clock = SystemClock()
	}
	return &MemoryCache{
		periods:        make(map[CacheKey]periodEntry),
		postings:       make(map[CacheKey]postingEntry),
		clock:          clock,
		logger:         &NoopLogger{},
		sweepEvery:     16,
		sweepScanLimit: 32,
	}
}

// SetLogger replaces the cache's logger (noop by default).
func (c *MemoryCache) SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

func (c *MemoryCache) GetPeriod(key CacheKey) (StatementPeriod, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.periods[key]
	if !ok || c.clock.Now().After(entry.expiration) {
		c.periodMisses++
		return StatementPeriod{}, false
	}
	c.periodHits++
	return entry.value, true
}

func (c *MemoryCache) SetPeriod(key CacheKey, p StatementPeriod, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.periods[key] = periodEntry{value: p, expiration: c.clock.Now().Add(ttl)}
	c.maybeSweep()
}

func (c *MemoryCache) GetPosting(key CacheKey) (PostingPreview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.postings[key]
	if !ok || c.clock.Now().After(entry.expiration) {
		c.postingMisses++
		return PostingPreview{}, false
	}
	c.postingHits++
	return entry.value, true
}

func (c *MemoryCache) SetPosting(key CacheKey, p PostingPreview, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.postings[key] = postingEntry{value: p, expiration: c.clock.Now().Add(ttl)}
	c.maybeSweep()
}

func (c *MemoryCache) InvalidateEntity(entityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.periods {
		if key.EntityID == entityID {
			delete(c.periods, key)
		}
	}
	for key := range c.postings {
		if key.EntityID == entityID {
			delete(c.postings, key)
		}
	}
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.periods = make(map[CacheKey]periodEntry)
	c.postings = make(map[CacheKey]postingEntry)
}

func (c *MemoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		PeriodHits:    c.periodHits,
		PeriodMisses:  c.periodMisses,
		PostingHits:   c.postingHits,
		PostingMisses: c.postingMisses,
		Evictions:     c.evictions,
		Size:          len(c.periods) + len(c.postings),
	}
}

// maybeSweep runs the sampled expiry sweep. Caller must hold c.mu.
func (c *MemoryCache) maybeSweep() {
	if c.sweepEvery > 1 && rand.Intn(c.sweepEvery) != 0 {
		return
	}

	now := c.clock.Now()
	evicted := int64(0)

	scanned := 0
	for key, entry := range c.periods {
		if scanned >= c.sweepScanLimit {
			break
		}
		scanned++
		if now.After(entry.expiration) {
			delete(c.periods, key)
			evicted++
		}
	}

	scanned = 0
	for key, entry := range c.postings {
		if scanned >= c.sweepScanLimit {
			break
		}
		scanned++
		if now.After(entry.expiration) {
			delete(c.postings, key)
			evicted++
		}
	}

	if evicted > 0 {
		c.evictions += evicted
		c.logger.Debug("cache sweep evicted expired entries",
			Field{"evicted", evicted},
			Field{"size", len(c.periods) + len(c.postings)},
		)
	}
}
