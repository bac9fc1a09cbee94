package guidance

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
RouteDirections. pecah route jadi leg per nama jalan. Misalkan:

	A --Main St--> B --Main St--> C --Elm St--> D

leg pertama START on Main St (A..C). di C nama jalan ganti, leg baru dibuka dengan sign dari
relative bearing antara edge B->C dan C->D. edge dengan nama jalan sama dengan leg sekarang
cuma nambah distance leg.
route dengan kurang dari 2 node return list kosong.
*/
func RouteDirections(g Graph, route []int64) []NavigationDirection {
	directions := make([]NavigationDirection, 0)
	if len(route) < 2 {
		return directions
	}

	current := NavigationDirection{
		Direction: START,
		Way:       g.WayName(route[0], route[1]),
		Distance:  edgeDistance(g, route[0], route[1]),
		From:      0,
		To:        1,
	}

	for i := 1; i+1 < len(route); i++ {
		way := g.WayName(route[i], route[i+1])
		dist := edgeDistance(g, route[i], route[i+1])

		if way == current.Way {
			current.Distance += dist
			current.To = i + 1
			continue
		}

		directions = append(directions, current)
		current = NavigationDirection{
			Direction: ConvertBearingToDirection(turnAngle(g, route, i)),
			Way:       way,
			Distance:  dist,
			From:      i,
			To:        i + 1,
		}
	}

	directions = append(directions, current)
	return directions
}

type DrivingDirection struct {
	Instruction string                   `json:"instruction"`
	Point       datastructure.Coordinate `json:"turn_point"`
	StreetName  string                   `json:"street_name"`
	Distance    float64                  `json:"distance"`
	TurnType    string                   `json:"turn_type"`
}

func NewDrivingDirection(g Graph, route []int64, nd NavigationDirection) DrivingDirection {
	turnNode := route[nd.From]
	return DrivingDirection{
		Instruction: nd.String(),
		Point:       datastructure.NewCoordinate(g.Lat(turnNode), g.Lon(turnNode)),
		StreetName:  nd.WayOrUnknown(),
		Distance:    util.RoundFloat(nd.Distance, 3),
		TurnType:    DirectionType(nd.Direction),
	}
}

// GetDrivingDirections RouteDirections + text & titik belok tiap leg.
func GetDrivingDirections(g Graph, route []int64) []DrivingDirection {
	legs := RouteDirections(g, route)
	drivingDirections := make([]DrivingDirection, 0, len(legs))
	for _, leg := range legs {
		drivingDirections = append(drivingDirections, NewDrivingDirection(g, route, leg))
	}
	return drivingDirections
}
