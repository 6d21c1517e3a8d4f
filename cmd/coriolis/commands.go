package main

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onlinebacon/coriolis/internal/export"
	"github.com/onlinebacon/coriolis/internal/metrics"
	"github.com/onlinebacon/coriolis/internal/scene"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	conf   *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{conf: viper.New()}

	root := &cobra.Command{
		Use:   "coriolis",
		Short: "Ground and inertial tracks on a rotating planet",
		Long: `coriolis builds the great-circle path between two points on a rotating
sphere, the track a traveller moving in a straight inertial line leaves on
it, and renders the trip frame by frame.

Every flag can also be set through the environment as CORIOLIS_<FLAG>, with
dashes replaced by underscores.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.conf.SetEnvPrefix("CORIOLIS")
			a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			a.conf.AutomaticEnv()
			if err := a.conf.BindPFlags(cmd.Flags()); err != nil {
				return errors.Wrap(err, "binding flags")
			}
			a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: parseLogLevel(a.conf.GetString("log-level")),
			}))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.conf.GetBool("metrics") {
				return nil
			}
			return errors.Wrap(metrics.Write(cmd.ErrOrStderr()), "writing metrics")
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "Log level: debug, info, warn or error.")
	pf.Bool("metrics", false, "Dump Prometheus metrics to stderr on exit.")
	pf.String("from", "0,0", "Departure as lat,lon in degrees.")
	pf.String("to", "60,0", "Destination as lat,lon in degrees.")
	pf.String("travel", "27000", "Trip duration in seconds, or a duration such as 7h30m.")
	pf.Int("depth", 6, "Path subdivision depth; each path has 2^depth+1 points.")
	pf.String("spin", "solar", "Planet spin: solar (24 h) or sidereal.")
	pf.String("epoch", "", "Departure time (RFC 3339). Orients the planet by sidereal time.")
	pf.Float64("grid", 10, "Background grid spacing in degrees, 0 to disable.")
	pf.Float64("cam-lat", 0, "Camera latitude in degrees.")
	pf.Float64("cam-lon", 0, "Camera longitude in degrees.")
	pf.Bool("follow", false, "Turn the camera with the planet.")
	pf.Bool("show-paths", true, "Include path points in frames.")

	root.AddCommand(a.pathsCmd(), a.framesCmd(), a.geojsonCmd())
	return root
}

// buildScene loads the scene config and builds it through a path cache.
func (a *app) buildScene() (*scene.Scene, func(), error) {
	cfg := loadSceneConfig(a.conf, a.logger)
	paths, err := scene.NewPathCache(64)
	if err != nil {
		return nil, nil, err
	}
	sc, err := scene.New(cfg, a.logger, paths)
	if err != nil {
		paths.Close()
		return nil, nil, errors.Wrap(err, "building scene")
	}
	return sc, paths.Close, nil
}

func (a *app) pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print a JSON summary of the ground, inertial and fixed paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, done, err := a.buildScene()
			if err != nil {
				return err
			}
			defer done()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(sc.Summary()), "writing summary")
		},
	}
}

func (a *app) framesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render the trip as JSON lines, one frame per step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, done, err := a.buildScene()
			if err != nil {
				return err
			}
			defer done()

			rc := loadRenderConfig(a.conf, a.logger)
			anim := scene.NewAnimator(sc,
				scene.NewPool(rc.Workers, a.logger),
				scene.NewFrameCache(a.logger),
				scene.AnimatorConfig{
					Step:      rc.Step,
					Loops:     rc.Loops,
					Interval:  rc.Interval,
					Camera:    rc.Camera,
					ShowPaths: rc.ShowPaths,
					Ease:      rc.Ease,
					MaxFrames: rc.MaxFrames,
				},
				a.logger,
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			_, err = anim.Run(cmd.Context(), func(f *scene.Frame) error {
				return enc.Encode(f)
			})
			return err
		},
	}

	f := cmd.Flags()
	f.String("step", "300", "Simulated time between frames, seconds or a duration.")
	f.Int("loops", 1, "Number of passes over the trip.")
	f.String("interval", "0", "Wall-clock delay between frames, seconds or a duration.")
	f.Int("workers", 0, "Render workers, 0 for one per CPU.")
	f.Bool("ease", false, "Ease in and out over the trip instead of a constant step.")
	f.Int("max-frames", 0, "Bound on cached frames, 0 for no bound.")
	return cmd
}

func (a *app) geojsonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geojson",
		Short: "Write the paths as a GeoJSON FeatureCollection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, done, err := a.buildScene()
			if err != nil {
				return err
			}
			defer done()

			fc := export.Scene(sc)
			if at := a.conf.GetString("at"); at != "" {
				d, err := parseSeconds(at)
				if err != nil {
					return errors.Wrapf(err, "--at %q", at)
				}
				rc := loadRenderConfig(a.conf, a.logger)
				export.AddTrackers(fc, sc.Render(d, rc.Camera, false))
			}
			return export.Write(cmd.OutOrStdout(), fc)
		},
	}

	cmd.Flags().String("at", "", "Also place the trackers at this elapsed time, seconds or a duration.")
	return cmd
}
