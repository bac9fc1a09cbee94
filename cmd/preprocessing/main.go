package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/config"
	"github.com/lintang-b-s/osmroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/guidance"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/snap"
)

var (
	configFile = flag.String("config", "", "yaml config file (optional)")
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreeetmap file buat road network graphnya")
	src        = flag.String("src", "", "origin \"lat,lon\". kalau src & dst di set, print turn-by-turn directions")
	dst        = flag.String("dst", "", "destination \"lat,lon\"")
	algorithm  = flag.String("algorithm", "astar", "astar | dijkstra")
	timeout    = flag.Duration("timeout", 30*time.Second, "search timeout")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

// offline tool: build graph dari file osm, print statistik graph & max speed per road class,
// dan optional satu shortest path query.
func main() {
	flag.Parse()
	if *cpuprofile != "" {
		// ./bin/osmroute-preprocessing -cpuprofile=osmroutecpu.prof -memprofile=osmroutemem.mprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfig(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "f" {
			cfg.Graph.MapFile = *mapFile
		}
	})

	ctx := context.Background()
	g, buildStats, parseStats, err := osmparser.BuildGraph(ctx, cfg.Graph.MapFile, cfg.Graph.AllowedHighways)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "build_graph")

	fmt.Printf("openstreetmap: %d ways, %d nodes (%d named)\n", parseStats.Ways, parseStats.Nodes, parseStats.NamedNodes)
	fmt.Printf("graph: %d nodes, %d ways (%d valid, %d with < 2 members), %d routable vertices, %d edges, %d pruned, %d unknown way members\n",
		buildStats.Nodes, buildStats.Ways, buildStats.ValidWays, buildStats.ShortWays, buildStats.RoutableVertices,
		buildStats.Edges, buildStats.PrunedNodes, buildStats.SkippedMemberRefs)
	fmt.Printf("connected components: %d\n", g.NumComponents())
	sw, ne := g.Bounds()
	fmt.Printf("bounds: (%f, %f) - (%f, %f)\n", sw.Lat, sw.Lon, ne.Lat, ne.Lon)

	fmt.Printf("\n%-16s %8s %8s %10s\n", "highway", "ways", "maxspeed", "avg km/h")
	for _, rc := range osmparser.SpeedReport(g) {
		fmt.Printf("%-16s %8d %8d %10.1f\n", rc.Highway, rc.Ways, rc.TaggedWays, rc.AvgSpeedKMH)
	}

	if *src == "" || *dst == "" {
		return
	}

	srcLat, srcLon, err := parseLatLon(*src)
	if err != nil {
		log.Fatal(err)
	}
	dstLat, dstLon, err := parseLatLon(*dst)
	if err != nil {
		log.Fatal(err)
	}

	locator := snap.NewH3Locator(g, cfg.Snap.H3Resolution)
	from, err := locator.Closest(srcLon, srcLat)
	if err != nil {
		log.Fatal(err)
	}
	to, err := locator.Closest(dstLon, dstLat)
	if err != nil {
		log.Fatal(err)
	}

	searchCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	start := time.Now()
	sp, err := routingalgorithm.NewRouteAlgorithm(g).ShortestPath(searchCtx, routingalgorithm.Algorithm(*algorithm), from, to)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n%s node %d -> node %d: %d nodes settled in %s\n", *algorithm, from, to, sp.Settled, time.Since(start))
	if !sp.Found() {
		fmt.Println("no route found")
		return
	}

	fmt.Printf("distance: %.3f miles (%.3f km), straight line %.3f km\n", sp.Dist, geo.MilesToKM(sp.Dist),
		geo.CalculateHaversineDistance(srcLat, srcLon, dstLat, dstLon))
	for _, nd := range guidance.RouteDirections(g, sp.Nodes) {
		fmt.Println(nd.String())
	}
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate %q, want \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return lat, lon, nil
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		f, err := os.Create(strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1))
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
