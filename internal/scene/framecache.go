package scene

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/onlinebacon/coriolis/internal/metrics"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// FrameKey identifies a rendered frame of one scene.
type FrameKey struct {
	Elapsed   time.Duration
	Camera    transform.Camera
	ShowPaths bool
}

// frameEntry wraps a frame with generation metadata.
type frameEntry struct {
	frame       *Frame
	generatedAt time.Time
}

// FrameCache holds rendered frames so repeated animation loops do not
// re-project the scene. Safe for concurrent use by multiple goroutines.
type FrameCache struct {
	mu      sync.RWMutex
	entries map[FrameKey]*frameEntry

	logger *slog.Logger

	// Counters (lock-free).
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewFrameCache creates an empty frame cache.
func NewFrameCache(logger *slog.Logger) *FrameCache {
	return &FrameCache{
		entries: make(map[FrameKey]*frameEntry),
		logger:  logger,
	}
}

// Get returns the cached frame for key, or nil.
func (c *FrameCache) Get(key FrameKey) *Frame {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
		metrics.IncFrameCacheHits()
		return entry.frame
	}

	c.misses.Add(1)
	metrics.IncFrameCacheMisses()
	return nil
}

// Put stores a frame under key, replacing any previous one.
func (c *FrameCache) Put(key FrameKey, f *Frame) {
	entry := &frameEntry{
		frame:       f,
		generatedAt: time.Now(),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	c.updateMetrics()
}

// Evict trims the cache to at most maxEntries frames, dropping the least
// recently generated first, and returns how many it removed. A negative
// maxEntries is treated as 0.
func (c *FrameCache) Evict(maxEntries int) int {
	if maxEntries < 0 {
		maxEntries = 0
	}

	c.mu.Lock()
	excess := len(c.entries) - maxEntries
	if excess <= 0 {
		c.mu.Unlock()
		return 0
	}
	keys := make([]FrameKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := c.entries[keys[i]], c.entries[keys[j]]
		if !a.generatedAt.Equal(b.generatedAt) {
			return a.generatedAt.Before(b.generatedAt)
		}
		return keys[i].Elapsed < keys[j].Elapsed
	})
	for _, k := range keys[:excess] {
		delete(c.entries, k)
	}
	c.mu.Unlock()

	c.evictions.Add(int64(excess))
	metrics.AddFrameCacheEvictions(excess)
	c.updateMetrics()
	c.logger.Debug("frame cache eviction", "entries_removed", excess)
	return excess
}

// FrameCacheStats holds frame cache statistics.
type FrameCacheStats struct {
	Entries   int
	SizeBytes int64
	Oldest    time.Duration // smallest cached elapsed time
	Newest    time.Duration // largest cached elapsed time
	Hits      int64
	Misses    int64
	Evictions int64
}

// Stats returns current cache statistics.
func (c *FrameCache) Stats() FrameCacheStats {
	c.mu.RLock()
	count := len(c.entries)

	var oldest, newest time.Duration
	first := true
	for k := range c.entries {
		if first || k.Elapsed < oldest {
			oldest = k.Elapsed
		}
		if first || k.Elapsed > newest {
			newest = k.Elapsed
		}
		first = false
	}
	c.mu.RUnlock()

	return FrameCacheStats{
		Entries:   count,
		SizeBytes: c.estimateSizeBytes(),
		Oldest:    oldest,
		Newest:    newest,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// estimateSizeBytes returns a rough estimate of the cache memory footprint.
func (c *FrameCache) estimateSizeBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, entry := range c.entries {
		if entry.frame == nil {
			continue
		}
		// Colour strings are shared constants, so only headers count.
		sprites := int64(len(entry.frame.Sprites)) * int64(unsafe.Sizeof(Sprite{}))
		trackers := int64(len(entry.frame.Trackers)) * int64(unsafe.Sizeof(Tracker{}))
		frameOverhead := int64(unsafe.Sizeof(Frame{}))
		entryOverhead := int64(unsafe.Sizeof(frameEntry{}))
		total += sprites + trackers + frameOverhead + entryOverhead
	}

	// Map overhead (rough: key size per bucket slot).
	total += int64(len(c.entries)) * int64(unsafe.Sizeof(FrameKey{}))

	return total
}

// updateMetrics publishes the current cache size to Prometheus.
func (c *FrameCache) updateMetrics() {
	c.mu.RLock()
	count := len(c.entries)
	c.mu.RUnlock()

	metrics.SetFrameCacheEntries(count)
}
