package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/onlinebacon/coriolis/internal/scene"
	"github.com/onlinebacon/coriolis/internal/transform"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := scene.DefaultConfig()
	cfg.Depth = 4
	sc, err := scene.New(cfg, logger, nil)
	if err != nil {
		fmt.Println("ERROR building scene:", err)
		os.Exit(1)
	}

	sum := sc.Summary()
	fmt.Printf("Trip %v -> %v in %v, planet turns %.2f° (%s)\n",
		cfg.From, cfg.To, cfg.Travel, sum.Rotation, cfg.Spin)
	for _, p := range sum.Paths {
		fmt.Printf("  %-8s %3d points  chord %.6f  arc %.6f rad  %s\n",
			p.Kind, p.Points, p.Chord, p.Arc, humanize.SIWithDigits(p.DistanceM, 1, "m"))
	}

	// Re-spinning each inertial sample by the rotation at its moment must land
	// back on the fixed inertial great circle.
	n := len(sc.Inertial.Points)
	total := cfg.Spin.Angle(cfg.Travel)
	fmt.Printf("\n%5s %9s  %-19s %-19s %12s %10s\n", "i", "t", "ground", "inertial", "divergence", "residual")

	var worst float64
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		angle := total * frac
		t := time.Duration(frac * float64(cfg.Travel)).Round(time.Second)

		g, in := sc.Ground.Points[i], sc.Inertial.Points[i]
		glat, glon := g.LatLon()
		ilat, ilon := in.LatLon()
		div := transform.SurfaceDistance(transform.ToS2(g.Pos).Distance(transform.ToS2(in.Pos)))
		residual := transform.Spun(in.Pos, angle).Dist(sc.Fixed.Points[i].Pos)
		if residual > worst {
			worst = residual
		}

		fmt.Printf("%5d %9s  %7.3f°,%8.3f°  %7.3f°,%8.3f° %12s %10.2e\n",
			i, scene.Clock(t), glat, glon, ilat, ilon, humanize.SIWithDigits(div, 1, "m"), residual)
	}

	fmt.Printf("\nMax divergence: %s\n", humanize.SIWithDigits(sum.MaxDivergenceM, 2, "m"))
	fmt.Printf("Max round-trip residual: %.3e (unit sphere)\n", worst)
}
