package main

import (
	"log/slog"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/onlinebacon/coriolis/internal/scene"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// renderConfig holds the animation and view settings.
type renderConfig struct {
	Camera    transform.Camera
	Step      time.Duration // simulated time between frames (default: 300s)
	Loops     int           // passes over the trip (default: 1)
	Interval  time.Duration // wall-clock delay between frames (default: 0)
	Workers   int           // render pool size (default: NumCPU)
	ShowPaths bool          // include path points (default: true)
	Ease      bool          // cosine easing over the trip (default: false)
	MaxFrames int           // frame cache bound, 0 for unbounded (default: 0)
}

func loadSceneConfig(conf *viper.Viper, logger *slog.Logger) scene.Config {
	cfg := scene.DefaultConfig()

	if v := conf.GetString("from"); v != "" {
		c, err := scene.ParseCoord(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_FROM value, using default", "value", v, "default", cfg.From.String(), "error", err)
		} else {
			cfg.From = c
		}
	}

	if v := conf.GetString("to"); v != "" {
		c, err := scene.ParseCoord(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_TO value, using default", "value", v, "default", cfg.To.String(), "error", err)
		} else {
			cfg.To = c
		}
	}

	if v := conf.GetString("travel"); v != "" {
		d, err := parseSeconds(v)
		if err != nil || d < 0 {
			logger.Warn("invalid CORIOLIS_TRAVEL value, using default", "value", v, "default", cfg.Travel.Seconds())
		} else {
			cfg.Travel = d
		}
	}

	if v := conf.GetString("depth"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 0 || n > scene.MaxDepth {
			logger.Warn("invalid CORIOLIS_DEPTH value, using default", "value", v, "default", cfg.Depth)
		} else {
			cfg.Depth = n
		}
	}

	if v := conf.GetString("spin"); v != "" {
		s, ok := transform.ParseSpin(strings.ToLower(v))
		if !ok {
			logger.Warn("invalid CORIOLIS_SPIN value, using default", "value", v, "default", cfg.Spin.String())
		} else {
			cfg.Spin = s
		}
	}

	if v := conf.GetString("epoch"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_EPOCH value, ignoring", "value", v, "error", err)
		} else {
			cfg.Epoch = t
		}
	}

	if v := conf.GetString("grid"); v != "" {
		g, err := cast.ToFloat64E(v)
		if err != nil || g < 0 {
			logger.Warn("invalid CORIOLIS_GRID value, using default", "value", v, "default", cfg.Grid)
		} else {
			cfg.Grid = g
		}
	}

	logger.Info("scene config",
		"from", cfg.From.String(),
		"to", cfg.To.String(),
		"travel_seconds", cfg.Travel.Seconds(),
		"depth", cfg.Depth,
		"spin", cfg.Spin.String(),
		"grid", cfg.Grid,
	)

	return cfg
}

func loadRenderConfig(conf *viper.Viper, logger *slog.Logger) renderConfig {
	cfg := renderConfig{
		Step:      300 * time.Second,
		Loops:     1,
		Workers:   runtime.NumCPU(),
		ShowPaths: true,
	}

	if v := conf.GetString("cam-lat"); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil || f < -90 || f > 90 {
			logger.Warn("invalid CORIOLIS_CAM_LAT value, using default", "value", v, "default", 0)
		} else {
			cfg.Camera.Lat = f
		}
	}

	if v := conf.GetString("cam-lon"); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_CAM_LON value, using default", "value", v, "default", 0)
		} else {
			cfg.Camera.Lon = f
		}
	}

	if v := conf.GetString("follow"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_FOLLOW value, using default", "value", v, "default", false)
		} else {
			cfg.Camera.Follow = b
		}
	}

	if v := conf.GetString("step"); v != "" {
		d, err := parseSeconds(v)
		if err != nil || d <= 0 {
			logger.Warn("invalid CORIOLIS_STEP value, using default", "value", v, "default", 300)
		} else {
			cfg.Step = d
		}
	}

	if v := conf.GetString("loops"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 1 {
			logger.Warn("invalid CORIOLIS_LOOPS value, using default", "value", v, "default", 1)
		} else {
			cfg.Loops = n
		}
	}

	if v := conf.GetString("interval"); v != "" {
		d, err := parseSeconds(v)
		if err != nil || d < 0 {
			logger.Warn("invalid CORIOLIS_INTERVAL value, using default", "value", v, "default", 0)
		} else {
			cfg.Interval = d
		}
	}

	if v := conf.GetString("workers"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 0 {
			logger.Warn("invalid CORIOLIS_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else if n > 0 {
			cfg.Workers = n
		}
	}

	if v := conf.GetString("show-paths"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_SHOW_PATHS value, using default", "value", v, "default", true)
		} else {
			cfg.ShowPaths = b
		}
	}

	if v := conf.GetString("ease"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			logger.Warn("invalid CORIOLIS_EASE value, using default", "value", v, "default", false)
		} else {
			cfg.Ease = b
		}
	}

	if v := conf.GetString("max-frames"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 0 {
			logger.Warn("invalid CORIOLIS_MAX_FRAMES value, using default", "value", v, "default", 0)
		} else {
			cfg.MaxFrames = n
		}
	}

	logger.Info("render config",
		"cam_lat", cfg.Camera.Lat,
		"cam_lon", cfg.Camera.Lon,
		"follow", cfg.Camera.Follow,
		"step_seconds", cfg.Step.Seconds(),
		"loops", cfg.Loops,
		"interval_ms", cfg.Interval.Milliseconds(),
		"workers", cfg.Workers,
	)

	return cfg
}

// parseSeconds reads a plain number as seconds and anything else as a Go
// duration string.
func parseSeconds(v string) (time.Duration, error) {
	if f, err := cast.ToFloat64E(v); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.Errorf("%q is not a finite number of seconds", v)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	return cast.ToDurationE(v)
}

func parseLogLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}
	return level
}
