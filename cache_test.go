package polysite

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/metrics"
)

func TestContentCacheLookup(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	require.NoError(t, s.SaveSnapshot(testSnapshot()))

	rec := &recordingRecorder{}
	c := NewContentCache(s, time.Minute, rec)

	e, ok, err := c.Lookup(content.Pages, "about")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "About", e.Title)

	e, ok, err = c.Lookup(content.Services, "about")
	require.NoError(t, err)
	assert.False(t, ok, "about is not a service")
	assert.Nil(t, e)

	e, ok, err = c.Lookup(content.Services, "marketing-strategy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Marketing Strategy", e.Title)

	_, ok, err = c.Lookup(content.Posts, "")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{
		"pages/found",
		"services/not_found",
		"services/found",
		"posts/not_found",
	}, rec.resolves)
}

func TestContentCacheServesStaleUntilInvalidated(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	require.NoError(t, s.SaveSnapshot(testSnapshot()))

	c := NewContentCache(s, time.Hour, nil)
	posts, err := c.Entries(content.Posts)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.NoError(t, s.ReplaceKind(content.KindPost, nil))

	posts, err = c.Entries(content.Posts)
	require.NoError(t, err)
	assert.Len(t, posts, 2, "cache should hold the old snapshot within the TTL")

	c.Invalidate()
	posts, err = c.Entries(content.Posts)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestContentCacheExpires(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	require.NoError(t, s.SaveSnapshot(testSnapshot()))

	c := NewContentCache(s, time.Nanosecond, nil)
	_, err := c.Snapshot()
	require.NoError(t, err)

	require.NoError(t, s.ReplaceKind(content.KindProject, nil))
	time.Sleep(time.Millisecond)

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Projects)
}

type recordingRecorder struct {
	mu       sync.Mutex
	resolves []string
	routes   map[string]int
	builds   int
}

func (r *recordingRecorder) IncResolve(collection string, outcome metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolves = append(r.resolves, collection+"/"+string(outcome))
}

func (r *recordingRecorder) AddRoutes(collection string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routes == nil {
		r.routes = make(map[string]int)
	}
	r.routes[collection] += n
}

func (r *recordingRecorder) ObserveBuildDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}
