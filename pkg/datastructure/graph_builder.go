package datastructure

import (
	"errors"
	"log"
)

var (
	ErrBuilderFinished = errors.New("graph builder already finished")
)

// DefaultAllowedHighways road class yang dianggap traversable.
var DefaultAllowedHighways = []string{
	"motorway",
	"trunk",
	"primary",
	"secondary",
	"tertiary",
	"unclassified",
	"residential",
	"living_street",
	"motorway_link",
	"trunk_link",
	"primary_link",
	"secondary_link",
	"tertiary_link",
}

// WayEvent satu osm way dari parser: member node (urut sesuai geometry) & tags.
type WayEvent struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

type BuildStats struct {
	Nodes             int
	Ways              int
	ValidWays         int
	SkippedMemberRefs int
	ShortWays         int
	PrunedNodes       int
	RoutableVertices  int
	Edges             int
}

/*
GraphBuilder. konsumsi event dari parser dengan urutan AddNode*, AddWay*, Finish.
way yang highway tag nya ada di allow-list jadi valid (punya edge), sisanya tetap
disimpan buat lookup nama jalan.
*/
type GraphBuilder struct {
	graph           *Graph
	allowedHighways map[string]struct{}
	stats           BuildStats
	finished        bool
}

func NewGraphBuilder(allowedHighways []string) *GraphBuilder {
	if len(allowedHighways) == 0 {
		allowedHighways = DefaultAllowedHighways
	}
	allowed := make(map[string]struct{}, len(allowedHighways))
	for _, hw := range allowedHighways {
		allowed[hw] = struct{}{}
	}
	return &GraphBuilder{
		graph:           NewGraph(),
		allowedHighways: allowed,
	}
}

func (b *GraphBuilder) AddNode(id int64, lon, lat float64, name string) error {
	if b.finished {
		return ErrBuilderFinished
	}
	if !b.graph.HasNode(id) {
		b.stats.Nodes++
	}
	b.graph.AddNode(id, lon, lat)
	if name != "" {
		b.graph.SetNodeName(id, name)
	}
	return nil
}

// IsValidWay apakah way dengan tags ini boleh dilewati.
func (b *GraphBuilder) IsValidWay(tags map[string]string) bool {
	highway, ok := tags["highway"]
	if !ok {
		return false
	}
	_, ok = b.allowedHighways[highway]
	return ok
}

func (b *GraphBuilder) AddWay(way WayEvent) error {
	if b.finished {
		return ErrBuilderFinished
	}
	if b.graph.HasWay(way.ID) {
		// way id duplikat, definisi pertama yang dipakai karena way sudah di commit.
		return nil
	}
	b.stats.Ways++

	b.graph.BeginWay(way.ID)
	members := 0
	for _, nodeID := range way.NodeIDs {
		if !b.graph.HasNode(nodeID) {
			b.stats.SkippedMemberRefs++
			continue
		}
		b.graph.AppendNodeToWay(way.ID, nodeID)
		members++
	}
	if members < 2 {
		b.stats.ShortWays++
	}

	if name, ok := way.Tags["name"]; ok {
		b.graph.SetWayName(way.ID, name)
	}
	if highway, ok := way.Tags["highway"]; ok {
		b.graph.SetWayHighway(way.ID, highway)
	}
	if speed, ok := way.Tags["maxspeed"]; ok {
		b.graph.SetWaySpeed(way.ID, speed)
	}
	valid := b.IsValidWay(way.Tags)
	if valid {
		b.stats.ValidWays++
	}
	b.graph.SetWayValid(way.ID, valid)

	b.graph.CommitWay(way.ID)
	return nil
}

// Finish prune isolated node (sekali saja) & return graph yang sudah frozen.
func (b *GraphBuilder) Finish() (*Graph, BuildStats) {
	if b.finished {
		return b.graph, b.stats
	}
	b.finished = true

	b.stats.PrunedNodes = b.graph.Prune()
	b.stats.RoutableVertices = b.graph.NumVertices()
	b.stats.Edges = b.graph.NumEdges()

	log.Printf("graph built: %d nodes, %d ways (%d valid), %d routable vertices, %d pruned, %d unknown way members skipped",
		b.stats.Nodes, b.stats.Ways, b.stats.ValidWays, b.stats.RoutableVertices, b.stats.PrunedNodes, b.stats.SkippedMemberRefs)
	return b.graph, b.stats
}
