package osmparser

import (
	"context"
	"sort"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

// BuildGraph parse file osm ke graph yang sudah frozen. graph baru boleh di query setelah fungsi ini return.
func BuildGraph(ctx context.Context, mapFile string, allowedHighways []string) (*datastructure.Graph, datastructure.BuildStats, ParseStats, error) {
	builder := datastructure.NewGraphBuilder(allowedHighways)
	parser := NewOSMParser(builder)
	if err := parser.ParseFile(ctx, mapFile); err != nil {
		return nil, datastructure.BuildStats{}, parser.Stats(), err
	}
	g, stats := builder.Finish()
	return g, stats, parser.Stats(), nil
}

type RoadClassSpeed struct {
	Highway     string
	Ways        int
	TaggedWays  int     // way yang punya tag maxspeed valid
	AvgSpeedKMH float64 // rata-rata WaySpeed
}

// SpeedReport ringkasan max speed per road class untuk way yang valid, urut dari jumlah way terbanyak.
func SpeedReport(g *datastructure.Graph) []RoadClassSpeed {
	classes := make(map[string]*RoadClassSpeed)
	g.ForEachWay(func(w datastructure.Way) bool {
		if !w.Valid {
			return true
		}
		rc, ok := classes[w.Highway]
		if !ok {
			rc = &RoadClassSpeed{Highway: w.Highway}
			classes[w.Highway] = rc
		}
		rc.Ways++
		if speed, err := ParseMaxSpeed(w.Speed); w.Speed != "" && err == nil && speed > 0 {
			rc.TaggedWays++
		}
		rc.AvgSpeedKMH += WaySpeed(w.Speed, w.Highway)
		return true
	})

	report := make([]RoadClassSpeed, 0, len(classes))
	for _, rc := range classes {
		rc.AvgSpeedKMH /= float64(rc.Ways)
		report = append(report, *rc)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Ways == report[j].Ways {
			return report[i].Highway < report[j].Highway
		}
		return report[i].Ways > report[j].Ways
	})
	return report
}
