package scene

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/onlinebacon/coriolis/internal/metrics"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Pool renders batches of frames on a bounded number of goroutines.
type Pool struct {
	workers int
	logger  *slog.Logger
}

// NewPool creates a pool with the given number of workers, at least one.
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	metrics.SetRenderWorkers(workers)
	return &Pool{
		workers: workers,
		logger:  logger,
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Render draws sc at each of times. frames[i] is the frame for times[i].
// It stops early and returns the context's error if ctx is cancelled.
func (p *Pool) Render(ctx context.Context, sc *Scene, times []time.Duration, cam transform.Camera, showPaths bool) ([]*Frame, error) {
	if len(times) == 0 {
		return nil, nil
	}

	start := time.Now()
	frames := make([]*Frame, len(times))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, t := range times {
		if gctx.Err() != nil {
			break
		}
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = sc.Render(t, cam, showPaths)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "rendering frames")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "rendering frames")
	}

	p.logger.Debug("batch rendered",
		"frames", len(frames),
		"workers", p.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return frames, nil
}
