package geo

import (
	"math"
	"regexp"
	"strconv"
)

// Coordinate is a point in signed decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// reCoordinate matches display strings of the form "5.6764° N, -0.1775° W".
var reCoordinate = regexp.MustCompile(`([\d.]+)°\s*([NS]),\s*(-?[\d.]+)°\s*([EW])`)

// ParseCoordinate parses a display coordinate string. The hemisphere letter
// fixes the sign of the magnitude: S and W negate, N and E keep positive.
// Unparseable input degrades to (0,0); callers relying on coordinates that
// may be malformed should treat the origin as "unknown".
func ParseCoordinate(s string) Coordinate {
	m := reCoordinate.FindStringSubmatch(s)
	if m == nil {
		return Coordinate{}
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Coordinate{}
	}
	lat = math.Abs(lat)
	lon = math.Abs(lon)
	if m[2] == "S" {
		lat = -lat
	}
	if m[4] == "W" {
		lon = -lon
	}
	return Coordinate{Lat: lat, Lon: lon}
}
