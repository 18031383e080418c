package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// flushThreshold bounds the durability lag of the cache: after this many
// unsaved writes the whole in-memory state is rewritten to disk, so an
// abnormal termination loses at most this many entries.
const flushThreshold = 50

// MinuteBucket floors an instant to the start of its minute and returns the
// epoch milliseconds of that minute. It is the cache and fetch key
// granularity: all queries within the same minute share one price.
func MinuteBucket(at time.Time) int64 {
	return at.UTC().Truncate(time.Minute).UnixMilli()
}

// cacheKey is the durable-store key for one (asset, minute) pair.
func cacheKey(asset string, bucket int64) string {
	return fmt.Sprintf("%s_%d", asset, bucket)
}

// PriceCache is a durable (asset, minute) → price store with an in-memory
// mirror shared by all concurrent fetches.
//
// A single mutex guards every public operation. This is intentionally coarse:
// contention is bounded by network fetch latency, not by cache-op cost, and
// one lock is simpler to reason about than sharding. The network fetch itself
// is never performed under the lock.
type PriceCache struct {
	path string

	mu      sync.Mutex
	prices  map[string]decimal.Decimal
	unsaved int
}

// OpenPriceCache loads the durable store at path, best-effort: a missing or
// corrupt file degrades to an empty cache rather than failing.
func OpenPriceCache(path string) *PriceCache {
	c := &PriceCache{path: path, prices: make(map[string]decimal.Decimal)}
	content, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(content, &c.prices); err != nil {
		// corrupt store, start over
		c.prices = make(map[string]decimal.Decimal)
	}
	return c
}

// Get returns the cached price for the asset at the instant's minute bucket.
func (c *PriceCache) Get(asset string, at time.Time) (Price, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.prices[cacheKey(asset, MinuteBucket(at))]
	if !ok {
		return UnknownPrice, false
	}
	return NewPrice(v), true
}

// Set stores a fetched price for the asset at the instant's minute bucket.
// Entries are append-only: once a key holds a price it is never overwritten,
// so repeated fetches are idempotent. Unknown prices are not stored.
//
// When the unsaved-write counter exceeds the flush threshold the cache
// proactively flushes; a failed flush is not an error for the caller, the
// worst case is a stale durable store.
func (c *PriceCache) Set(asset string, at time.Time, p Price) {
	if !p.IsKnown() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(asset, MinuteBucket(at))
	if _, ok := c.prices[key]; ok {
		return
	}
	c.prices[key] = p.Value()
	c.unsaved++
	if c.unsaved > flushThreshold {
		c.flushLocked()
	}
}

// Len returns the number of cached entries.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prices)
}

// Flush rewrites the whole in-memory state to the durable store.
func (c *PriceCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

// flushLocked writes the store; callers hold the mutex. The write is not
// crash-atomic: the worst case is a stale or missing cache, never corrupted
// ledger state.
func (c *PriceCache) flushLocked() error {
	content, err := json.Marshal(c.prices)
	if err != nil {
		return fmt.Errorf("cannot encode price cache: %w", err)
	}
	if err := os.WriteFile(c.path, content, 0644); err != nil {
		return fmt.Errorf("cannot write price cache %q: %w", c.path, err)
	}
	c.unsaved = 0
	return nil
}
