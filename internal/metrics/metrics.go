// Package metrics holds the Prometheus collectors for path building, frame
// rendering and the scene caches.
//
// There is no scrape endpoint; Write dumps the default registry in the text
// exposition format so a run can report what it did when it exits.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	pathsBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coriolis_paths_built_total",
			Help: "Total number of paths built, by frame.",
		},
		[]string{"frame"},
	)

	pathBuildDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coriolis_path_build_duration_seconds",
			Help:    "Time to subdivide and compile one path.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	pathPoints = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coriolis_path_points",
			Help: "Number of points in the most recently built path, by frame.",
		},
		[]string{"frame"},
	)

	framesRenderedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_frames_rendered_total",
			Help: "Total number of frames rendered.",
		},
	)

	frameRenderDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coriolis_frame_render_duration_seconds",
			Help:    "Time to transform and project one frame.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
	)

	frameCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_frame_cache_hits_total",
			Help: "Frame cache hits.",
		},
	)

	frameCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_frame_cache_misses_total",
			Help: "Frame cache misses.",
		},
	)

	frameCacheEvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_frame_cache_evictions_total",
			Help: "Frames evicted from the frame cache.",
		},
	)

	frameCacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coriolis_frame_cache_entries",
			Help: "Frames currently held by the frame cache.",
		},
	)

	pathCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_path_cache_hits_total",
			Help: "Path cache hits.",
		},
	)

	pathCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coriolis_path_cache_misses_total",
			Help: "Path cache misses.",
		},
	)

	renderWorkers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coriolis_render_workers",
			Help: "Size of the frame render worker pool.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		pathsBuiltTotal,
		pathBuildDurationSeconds,
		pathPoints,
		framesRenderedTotal,
		frameRenderDurationSeconds,
		frameCacheHitsTotal,
		frameCacheMissesTotal,
		frameCacheEvictionsTotal,
		frameCacheEntries,
		pathCacheHitsTotal,
		pathCacheMissesTotal,
		renderWorkers,
	)
}

// RecordPathBuild records one built path of the given frame.
func RecordPathBuild(frame string, points int, d time.Duration) {
	pathsBuiltTotal.WithLabelValues(frame).Inc()
	pathPoints.WithLabelValues(frame).Set(float64(points))
	pathBuildDurationSeconds.Observe(d.Seconds())
}

// RecordFrame records one rendered frame.
func RecordFrame(d time.Duration) {
	framesRenderedTotal.Inc()
	frameRenderDurationSeconds.Observe(d.Seconds())
}

// IncFrameCacheHits increments the frame cache hit counter.
func IncFrameCacheHits() { frameCacheHitsTotal.Inc() }

// IncFrameCacheMisses increments the frame cache miss counter.
func IncFrameCacheMisses() { frameCacheMissesTotal.Inc() }

// AddFrameCacheEvictions adds n to the frame cache eviction counter.
func AddFrameCacheEvictions(n int) { frameCacheEvictionsTotal.Add(float64(n)) }

// SetFrameCacheEntries sets the frame cache size gauge.
func SetFrameCacheEntries(n int) { frameCacheEntries.Set(float64(n)) }

// IncPathCacheHits increments the path cache hit counter.
func IncPathCacheHits() { pathCacheHitsTotal.Inc() }

// IncPathCacheMisses increments the path cache miss counter.
func IncPathCacheMisses() { pathCacheMissesTotal.Inc() }

// SetRenderWorkers sets the worker pool size gauge.
func SetRenderWorkers(n int) { renderWorkers.Set(float64(n)) }

// Write dumps every metric family of the default registry to w in the
// Prometheus text format.
func Write(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
