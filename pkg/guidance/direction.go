package guidance

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	START              = 101
)

const UNKNOWN_ROAD = "unknown road"

var ErrMalformedDirection = errors.New("malformed navigation direction")

var directionLabels = map[int]string{
	START:              "Start",
	CONTINUE_ON_STREET: "Go straight",
	TURN_SLIGHT_LEFT:   "Slight left",
	TURN_SLIGHT_RIGHT:  "Slight right",
	TURN_LEFT:          "Turn left",
	TURN_RIGHT:         "Turn right",
	TURN_SHARP_LEFT:    "Sharp left",
	TURN_SHARP_RIGHT:   "Sharp right",
}

var directionTypes = map[int]string{
	START:              "START",
	CONTINUE_ON_STREET: "CONTINUE_ON_STREET",
	TURN_SLIGHT_LEFT:   "TURN_SLIGHT_LEFT",
	TURN_SLIGHT_RIGHT:  "TURN_SLIGHT_RIGHT",
	TURN_LEFT:          "TURN_LEFT",
	TURN_RIGHT:         "TURN_RIGHT",
	TURN_SHARP_LEFT:    "TURN_SHARP_LEFT",
	TURN_SHARP_RIGHT:   "TURN_SHARP_RIGHT",
}

var navigationDirectionRe = regexp.MustCompile(`^([A-Za-z ]+) on (.+) and continue for ([0-9.]+) miles\.$`)

// NavigationDirection satu leg dari route. From & To index node di route, leg mencakup edge From..To-1.
type NavigationDirection struct {
	Direction int
	Way       string
	Distance  float64 // miles
	From      int
	To        int
}

func DirectionLabel(direction int) string {
	return directionLabels[direction]
}

func DirectionType(direction int) string {
	return directionTypes[direction]
}

func (nd NavigationDirection) WayOrUnknown() string {
	if strings.TrimSpace(nd.Way) == "" {
		return UNKNOWN_ROAD
	}
	return nd.Way
}

func (nd NavigationDirection) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", DirectionLabel(nd.Direction), nd.WayOrUnknown(), nd.Distance)
}

// ParseNavigationDirection kebalikan String. From & To tidak ada di text jadi selalu 0.
func ParseNavigationDirection(s string) (NavigationDirection, error) {
	m := navigationDirectionRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return NavigationDirection{}, fmt.Errorf("%w: %q", ErrMalformedDirection, s)
	}

	direction, ok := parseDirectionLabel(m[1])
	if !ok {
		return NavigationDirection{}, fmt.Errorf("%w: unknown direction %q", ErrMalformedDirection, m[1])
	}
	dist, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return NavigationDirection{}, fmt.Errorf("%w: %w", ErrMalformedDirection, err)
	}

	way := m[2]
	if way == UNKNOWN_ROAD {
		way = ""
	}
	return NavigationDirection{Direction: direction, Way: way, Distance: dist}, nil
}

func parseDirectionLabel(label string) (int, bool) {
	for direction, l := range directionLabels {
		if strings.EqualFold(l, strings.TrimSpace(label)) {
			return direction, true
		}
	}
	return 0, false
}
