package scene

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/onlinebacon/coriolis/internal/transform"
)

// MaxDepth bounds subdivision; 2^20+1 points per path is already far past
// what a frame can show.
const MaxDepth = 20

var (
	ErrAntipodal = errors.New("endpoints are antipodal, great circle is undefined")
	ErrDepth     = errors.New("depth out of range")
	ErrLatitude  = errors.New("latitude out of range")
	ErrTravel    = errors.New("travel time must not be negative")
)

// antipodalDot is the dot product below which two unit vectors are treated
// as antipodal; their chord midpoint would normalize to NaN or noise.
const antipodalDot = -1 + 1e-9

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coord) String() string {
	return strconv.FormatFloat(c.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'g', -1, 64)
}

// ParseCoord parses "lat,lon" in degrees.
func ParseCoord(s string) (Coord, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, errors.Errorf("coordinate %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coord{}, errors.Wrapf(err, "coordinate %q: latitude", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Coord{}, errors.Wrapf(err, "coordinate %q: longitude", s)
	}
	return Coord{Lat: lat, Lon: lon}, nil
}

// Config describes one trip.
type Config struct {
	From   Coord          // departure (default: 0,0)
	To     Coord          // destination (default: 60,0)
	Travel time.Duration  // trip duration (default: 7.5h)
	Depth  int            // path subdivision depth (default: 6)
	Spin   transform.Spin // planet spin (default: SolarDay)

	// Epoch anchors the planet orientation to GMST when set. The spin is
	// then forced to SiderealDay so paths and orientation agree.
	Epoch time.Time

	Grid float64 // background grid spacing in degrees, 0 disables (default: 10)
}

// DefaultConfig returns the reference trip: from the origin to 60°N along
// the prime meridian in 7.5 hours on a planet with a 24 h day.
func DefaultConfig() Config {
	return Config{
		From:   Coord{0, 0},
		To:     Coord{60, 0},
		Travel: 7*time.Hour + 30*time.Minute,
		Depth:  6,
		Spin:   transform.SolarDay,
		Grid:   10,
	}
}

// Validate reports the first problem that would make the trip's paths
// undefined.
func (c Config) Validate() error {
	for _, p := range []Coord{c.From, c.To} {
		if math.IsNaN(p.Lat) || math.Abs(p.Lat) > 90 {
			return errors.Wrapf(ErrLatitude, "%v", p.Lat)
		}
		if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
			return errors.Errorf("longitude %v is not finite", p.Lon)
		}
	}
	if c.Depth < 0 || c.Depth > MaxDepth {
		return errors.Wrapf(ErrDepth, "%d not in [0, %d]", c.Depth, MaxDepth)
	}
	if c.Travel < 0 {
		return errors.Wrapf(ErrTravel, "%v", c.Travel)
	}
	if c.Grid < 0 || math.IsNaN(c.Grid) {
		return errors.Errorf("grid spacing %v must be >= 0", c.Grid)
	}

	a := transform.FromLatLon(c.From.Lat, c.From.Lon)
	b := transform.FromLatLon(c.To.Lat, c.To.Lon)
	if a.Dot(b) < antipodalDot {
		return errors.Wrapf(ErrAntipodal, "ground path %v to %v", c.From, c.To)
	}
	aimed := transform.Spun(b, c.effectiveSpin().Angle(c.Travel))
	if a.Dot(aimed) < antipodalDot {
		return errors.Wrapf(ErrAntipodal, "inertial path %v to %v after %v", c.From, c.To, c.Travel)
	}
	return nil
}

func (c Config) effectiveSpin() transform.Spin {
	if !c.Epoch.IsZero() {
		return transform.SiderealDay
	}
	return c.Spin
}
