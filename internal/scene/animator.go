package scene

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/onlinebacon/coriolis/internal/transform"
)

// AnimatorConfig controls an animation run.
type AnimatorConfig struct {
	Step      time.Duration    // simulated time between frames (default: 5m)
	Loops     int              // passes over the trip (default: 1)
	Interval  time.Duration    // wall-clock delay between frames, 0 for none
	Camera    transform.Camera // view
	ShowPaths bool             // draw path points
	Ease      bool             // cosine ease-in/out over the trip
	MaxFrames int              // frame cache bound, 0 for no eviction
}

// Animator plays a scene from departure to arrival.
type Animator struct {
	scene  *Scene
	pool   *Pool
	cache  *FrameCache
	config AnimatorConfig
	logger *slog.Logger
}

// NewAnimator creates an animator. Non-positive Step and Loops fall back to
// their defaults.
func NewAnimator(sc *Scene, pool *Pool, cache *FrameCache, config AnimatorConfig, logger *slog.Logger) *Animator {
	if config.Step <= 0 {
		config.Step = 5 * time.Minute
	}
	if config.Loops < 1 {
		config.Loops = 1
	}
	return &Animator{
		scene:  sc,
		pool:   pool,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Times returns the elapsed time of each frame of one pass: every Step from
// 0, always ending on the arrival time. With Ease the same number of frames
// is spread by (1 - cos πt)/2, slow at both ends.
func (a *Animator) Times() []time.Duration {
	travel := a.scene.cfg.Travel
	if travel == 0 {
		return []time.Duration{0}
	}
	n := int(travel / a.config.Step)
	if travel%a.config.Step != 0 {
		n++
	}

	times := make([]time.Duration, 0, n+1)
	for i := 0; i < n; i++ {
		times = append(times, time.Duration(i)*a.config.Step)
	}
	times = append(times, travel)

	if a.config.Ease {
		for i := range times {
			t := float64(i) / float64(n)
			times[i] = time.Duration(float64(travel) * (1 - math.Cos(t*math.Pi)) / 2)
		}
		times[len(times)-1] = travel
	}
	return times
}

// Run plays the animation, calling emit with each frame in order. Frames
// missing from the cache are rendered as a batch at the start of each pass,
// so every pass after the first is served from the cache.
//
// Run returns the number of frames emitted. It stops with the context's
// error when ctx is cancelled and with emit's error when emit fails.
func (a *Animator) Run(ctx context.Context, emit func(*Frame) error) (int, error) {
	times := a.Times()
	a.logger.Info("animation starting",
		"frames_per_loop", len(times),
		"loops", a.config.Loops,
		"step_seconds", a.config.Step.Seconds(),
		"interval_ms", a.config.Interval.Milliseconds(),
		"workers", a.pool.Workers(),
	)

	var tick <-chan time.Time
	if a.config.Interval > 0 {
		ticker := time.NewTicker(a.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	emitted := 0
	for loop := 0; loop < a.config.Loops; loop++ {
		frames, err := a.pass(ctx, times)
		if err != nil {
			return emitted, err
		}

		for _, f := range frames {
			if emitted > 0 && tick != nil {
				select {
				case <-ctx.Done():
				case <-tick:
				}
			}
			if err := ctx.Err(); err != nil {
				return emitted, err
			}

			if err := emit(f); err != nil {
				return emitted, errors.Wrap(err, "emitting frame")
			}
			emitted++
		}

		if a.config.MaxFrames > 0 {
			a.cache.Evict(a.config.MaxFrames)
		}
	}

	stats := a.cache.Stats()
	a.logger.Info("animation complete",
		"frames", emitted,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"cache_entries", stats.Entries,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return emitted, nil
}

// pass returns the frames for times, rendering the ones the cache lacks.
func (a *Animator) pass(ctx context.Context, times []time.Duration) ([]*Frame, error) {
	frames := make([]*Frame, len(times))
	var missing []time.Duration
	var slots []int
	for i, t := range times {
		if f := a.cache.Get(a.key(t)); f != nil {
			frames[i] = f
			continue
		}
		missing = append(missing, t)
		slots = append(slots, i)
	}
	if len(missing) == 0 {
		return frames, nil
	}

	rendered, err := a.pool.Render(ctx, a.scene, missing, a.config.Camera, a.config.ShowPaths)
	if err != nil {
		return nil, err
	}
	for j, f := range rendered {
		a.cache.Put(a.key(missing[j]), f)
		frames[slots[j]] = f
	}
	return frames, nil
}

func (a *Animator) key(t time.Duration) FrameKey {
	return FrameKey{Elapsed: t, Camera: a.config.Camera, ShowPaths: a.config.ShowPaths}
}
