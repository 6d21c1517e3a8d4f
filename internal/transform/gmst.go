package transform

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const j2000 = 2451545.0

const secondsPerDay = 86400.0

// JulianDate converts a UTC instant to a Julian Date.
// Valid for any Gregorian calendar date.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	year := float64(t.Year())
	month := float64(t.Month())

	// January and February count as months 13 and 14 of the previous year.
	if month <= 2 {
		year--
		month += 12
	}

	century := math.Floor(year / 100)
	gregorian := 2 - century + math.Floor(century/4)

	dayFraction := float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/secondsPerDay

	return math.Floor(365.25*(year+4716)) +
		math.Floor(30.6001*(month+1)) +
		float64(t.Day()) + gregorian - 1524.5 + dayFraction
}

// GMST returns Greenwich Mean Sidereal Time for t as an angle in [0, 2π).
// IAU-82 model, Vallado "Fundamentals of Astrodynamics" Eq 3-47:
//
//	θ = 67310.54841 + (876600h + 8640184.812866)·T + 0.093104·T² − 6.2e-6·T³
//
// with T in Julian centuries of UT1 since J2000.0 and θ in seconds of time.
func GMST(t time.Time) float64 {
	T := (JulianDate(t) - j2000) / 36525.0

	sec := 67310.54841 +
		(876600*3600+8640184.812866)*T +
		0.093104*T*T -
		6.2e-6*T*T*T

	sec = math.Mod(sec, secondsPerDay)
	if sec < 0 {
		sec += secondsPerDay
	}
	return sec / secondsPerDay * 2 * math.Pi
}
