package osmparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidMaxSpeed = errors.New("invalid maxspeed tag")

const (
	mphToKMH   = 1.60934
	knotsToKMH = 1.852
)

// ParseMaxSpeed konversi value tag maxspeed osm ("50", "30 mph", "60 km/h", "10 knots") ke km/h.
// kalau ada beberapa value dipisah ';' yang dipakai value pertama.
func ParseMaxSpeed(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if i := strings.Index(value, ";"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		value = strings.TrimSuffix(value, "mph")
		factor = mphToKMH
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	case strings.HasSuffix(value, "kmh"):
		value = strings.TrimSuffix(value, "kmh")
	case strings.HasSuffix(value, "knots"):
		value = strings.TrimSuffix(value, "knots")
		factor = knotsToKMH
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || speed < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxSpeed, value)
	}
	return speed * factor, nil
}

// RoadTypeMaxSpeed default max speed (km/h) per road class kalau way tidak punya tag maxspeed.
func RoadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified", "residential":
		return 30
	case "service", "road":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 10
	default:
		return 40
	}
}

// WaySpeed max speed way (km/h): tag maxspeed kalau valid, kalau tidak default road class nya.
func WaySpeed(maxspeed, highway string) float64 {
	if maxspeed != "" {
		if speed, err := ParseMaxSpeed(maxspeed); err == nil && speed > 0 {
			return speed
		}
	}
	return RoadTypeMaxSpeed(highway)
}
