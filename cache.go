package polysite

import (
	"sync"
	"time"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/metrics"
)

// ContentCache is an in-memory copy of the stored snapshot with a TTL.
type ContentCache struct {
	mu       sync.RWMutex
	snap     *content.Snapshot
	fetched  time.Time
	ttl      time.Duration
	store    *Store
	recorder metrics.Recorder
}

// NewContentCache creates a ContentCache backed by the given Store. A nil
// recorder disables resolution metrics.
func NewContentCache(s *Store, ttl time.Duration, r metrics.Recorder) *ContentCache {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	return &ContentCache{store: s, ttl: ttl, recorder: r}
}

func (c *ContentCache) valid() bool {
	return c.snap != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	snap, err := c.store.Snapshot()
	if err != nil {
		return err
	}
	c.snap = &snap
	c.fetched = time.Now()
	return nil
}

// Snapshot returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) Snapshot() (content.Snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := *c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return content.Snapshot{}, err
	}
	return *c.snap, nil
}

// Entries returns the members of col in snapshot order.
func (c *ContentCache) Entries(col content.Collection) ([]content.Entry, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Entries(col), nil
}

// Lookup resolves slug within col and records the outcome. A missing entry
// is reported through the boolean, not the error.
func (c *ContentCache) Lookup(col content.Collection, slug string) (*content.Entry, bool, error) {
	entries, err := c.Entries(col)
	if err != nil {
		return nil, false, err
	}
	e, ok := content.Resolve(entries, slug)
	outcome := metrics.OutcomeFound
	if !ok {
		outcome = metrics.OutcomeNotFound
	}
	c.recorder.IncResolve(col.Name, outcome)
	return e, ok, nil
}
