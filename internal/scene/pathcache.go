package scene

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/metrics"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Path kinds, also used as the metrics frame label.
const (
	KindGround   = "ground"
	KindInertial = "inertial"
	KindFixed    = "fixed"
)

// PathKey identifies a built path. Two scenes with equal keys share the
// same immutable Path.
type PathKey struct {
	Kind   string
	From   Coord
	To     Coord
	Depth  int
	Travel time.Duration
	Spin   transform.Spin
}

func (k PathKey) String() string {
	return fmt.Sprintf("%s|%v|%v|%d|%d|%v", k.Kind, k.From, k.To, k.Depth, int64(k.Travel), float64(k.Spin))
}

// PathCache memoizes built paths across scenes. A nil *PathCache is valid
// and builds every time.
type PathCache struct {
	cache *ristretto.Cache[string, *geodesic.Path]
}

// NewPathCache returns a cache holding up to maxPaths paths.
func NewPathCache(maxPaths int64) (*PathCache, error) {
	if maxPaths < 1 {
		maxPaths = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *geodesic.Path]{
		NumCounters: maxPaths * 10,
		MaxCost:     maxPaths,
		BufferItems: 64,
		Cost: func(*geodesic.Path) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating path cache")
	}
	return &PathCache{cache: cache}, nil
}

// GetOrBuild returns the cached path for key, calling build on a miss.
func (c *PathCache) GetOrBuild(key PathKey, build func() *geodesic.Path) *geodesic.Path {
	if c == nil {
		return timedBuild(key.Kind, build)
	}
	k := key.String()
	if p, ok := c.cache.Get(k); ok {
		metrics.IncPathCacheHits()
		return p
	}
	metrics.IncPathCacheMisses()

	p := timedBuild(key.Kind, build)
	c.cache.Set(k, p, 1)
	c.cache.Wait()
	return p
}

// Close releases the cache's background goroutines.
func (c *PathCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}

func timedBuild(kind string, build func() *geodesic.Path) *geodesic.Path {
	start := time.Now()
	p := build()
	metrics.RecordPathBuild(kind, len(p.Points), time.Since(start))
	return p
}
