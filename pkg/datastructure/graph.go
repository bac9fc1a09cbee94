package datastructure

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg/util"
)

type graphNode struct {
	id     int64
	lat    float64
	lon    float64
	name   string
	ways   []int32 // index way yang memuat node ini
	adj    []int32 // index node tetangga
	pruned bool

	component int32
}

type graphWay struct {
	id        int64
	nodes     []int32
	name      string
	highway   string
	speed     string
	valid     bool
	committed bool
}

// Way read-only view dari satu osm way di graph.
type Way struct {
	ID      int64
	Name    string
	Highway string
	Speed   string
	Valid   bool
	NodeIDs []int64
}

/*
Graph menyimpan semua node & way dalam arena (slice) yang dialamatkan pakai index int32.
id osm (int64) cuma dipakai di public api, dipetakan ke index lewat nodeIDMap/wayIDMap.

mutasi (AddNode, BeginWay, ..., CommitWay) hanya boleh sebelum Prune.
setelah Prune graph frozen & aman dibaca dari banyak goroutine tanpa lock.
*/
type Graph struct {
	nodes     []graphNode
	nodeIDMap map[int64]int32
	ways      []graphWay
	wayIDMap  map[int64]int32
	vertices  []int64
	frozen    bool

	numComponents int
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]graphNode, 0),
		nodeIDMap: make(map[int64]int32),
		ways:      make([]graphWay, 0),
		wayIDMap:  make(map[int64]int32),
	}
}

func (g *Graph) mustNotFrozen() {
	if g.frozen {
		panic("datastructure: graph is frozen, mutation after Prune")
	}
}

func (g *Graph) nodeIdx(id int64) int32 {
	idx, ok := g.nodeIDMap[id]
	if !ok {
		panic(fmt.Sprintf("datastructure: unknown node id %d", id))
	}
	return idx
}

func (g *Graph) wayIdx(id int64) int32 {
	idx, ok := g.wayIDMap[id]
	if !ok {
		panic(fmt.Sprintf("datastructure: unknown way id %d", id))
	}
	return idx
}

// AddNode register node baru. id yang sama dipakai ulang -> koordinat terakhir yang dipakai.
func (g *Graph) AddNode(id int64, lon, lat float64) {
	g.mustNotFrozen()
	if idx, ok := g.nodeIDMap[id]; ok {
		g.nodes[idx].lat = lat
		g.nodes[idx].lon = lon
		return
	}
	g.nodeIDMap[id] = int32(len(g.nodes))
	g.nodes = append(g.nodes, graphNode{
		id:  id,
		lat: lat,
		lon: lon,
	})
}

func (g *Graph) SetNodeName(id int64, name string) {
	g.mustNotFrozen()
	g.nodes[g.nodeIdx(id)].name = name
}

func (g *Graph) BeginWay(id int64) {
	g.mustNotFrozen()
	if _, ok := g.wayIDMap[id]; ok {
		return
	}
	g.wayIDMap[id] = int32(len(g.ways))
	g.ways = append(g.ways, graphWay{
		id:    id,
		nodes: make([]int32, 0),
	})
}

func (g *Graph) AppendNodeToWay(wayID, nodeID int64) {
	g.mustNotFrozen()
	w := g.wayIdx(wayID)
	g.ways[w].nodes = append(g.ways[w].nodes, g.nodeIdx(nodeID))
}

func (g *Graph) SetWayName(wayID int64, name string) {
	g.mustNotFrozen()
	g.ways[g.wayIdx(wayID)].name = name
}

func (g *Graph) SetWayHighway(wayID int64, highway string) {
	g.mustNotFrozen()
	g.ways[g.wayIdx(wayID)].highway = highway
}

func (g *Graph) SetWaySpeed(wayID int64, speed string) {
	g.mustNotFrozen()
	g.ways[g.wayIdx(wayID)].speed = speed
}

func (g *Graph) SetWayValid(wayID int64, valid bool) {
	g.mustNotFrozen()
	g.ways[g.wayIdx(wayID)].valid = valid
}

/*
CommitWay. untuk way dengan member [n0..nk]:
  - setiap pasangan (ni, ni+1) jadi edge undirected, hanya kalau way valid.
  - way dicatat di way-set setiap member node, valid atau tidak (nama jalan tetap bisa di query).

commit kedua kali untuk way yang sama tidak melakukan apa-apa.
*/
func (g *Graph) CommitWay(wayID int64) {
	g.mustNotFrozen()
	w := g.wayIdx(wayID)
	way := &g.ways[w]
	if way.committed {
		return
	}
	way.committed = true

	for _, n := range way.nodes {
		g.nodes[n].ways = appendUnique(g.nodes[n].ways, w)
	}

	if !way.valid {
		return
	}
	for i := 0; i+1 < len(way.nodes); i++ {
		u, v := way.nodes[i], way.nodes[i+1]
		if u == v {
			continue
		}
		g.nodes[u].adj = appendUnique(g.nodes[u].adj, v)
		g.nodes[v].adj = appendUnique(g.nodes[v].adj, u)
	}
}

func appendUnique(set []int32, x int32) []int32 {
	for _, s := range set {
		if s == x {
			return set
		}
	}
	return append(set, x)
}

// Prune hapus node tanpa tetangga dari vertex set & freeze graph. idempotent, return jumlah node yang di prune.
func (g *Graph) Prune() int {
	if g.frozen {
		return len(g.nodes) - len(g.vertices)
	}

	vertices := make([]int64, 0, len(g.nodes))
	for i := range g.nodes {
		if len(g.nodes[i].adj) == 0 {
			g.nodes[i].pruned = true
			continue
		}
		vertices = append(vertices, g.nodes[i].id)
	}
	g.vertices = vertices
	g.labelComponents()
	g.frozen = true
	return len(g.nodes) - len(g.vertices)
}

func (g *Graph) IsFrozen() bool {
	return g.frozen
}

// Vertices node id yang routable, urutan sesuai urutan AddNode.
func (g *Graph) Vertices() []int64 {
	if !g.frozen {
		vertices := make([]int64, 0, len(g.nodes))
		for i := range g.nodes {
			vertices = append(vertices, g.nodes[i].id)
		}
		return vertices
	}
	vertices := make([]int64, len(g.vertices))
	copy(vertices, g.vertices)
	return vertices
}

// ForEachVertex iterasi vertex tanpa alokasi slice baru. berhenti kalau fn return false.
func (g *Graph) ForEachVertex(fn func(id int64, lon, lat float64) bool) {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.pruned {
			continue
		}
		if !fn(n.id, n.lon, n.lat) {
			return
		}
	}
}

func (g *Graph) Adjacent(id int64) []int64 {
	n := &g.nodes[g.nodeIdx(id)]
	adj := make([]int64, len(n.adj))
	for i, v := range n.adj {
		adj[i] = g.nodes[v].id
	}
	return adj
}

func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodeIDMap[id]
	return ok
}

func (g *Graph) HasWay(id int64) bool {
	_, ok := g.wayIDMap[id]
	return ok
}

func (g *Graph) IsVertex(id int64) bool {
	idx, ok := g.nodeIDMap[id]
	if !ok {
		return false
	}
	return !g.nodes[idx].pruned
}

func (g *Graph) Lon(id int64) float64 {
	return g.nodes[g.nodeIdx(id)].lon
}

func (g *Graph) Lat(id int64) float64 {
	return g.nodes[g.nodeIdx(id)].lat
}

func (g *Graph) NodeName(id int64) string {
	return g.nodes[g.nodeIdx(id)].name
}

/*
WayName nama way yang memuat id1 & id2. kalau ada lebih dari satu way yang sama-sama memuat
kedua node, yang dipakai way dengan id terkecil. "" kalau tidak ada.
*/
func (g *Graph) WayName(id1, id2 int64) string {
	a := &g.nodes[g.nodeIdx(id1)]
	b := &g.nodes[g.nodeIdx(id2)]

	found := false
	var best int32
	for _, wa := range a.ways {
		for _, wb := range b.ways {
			if wa != wb {
				continue
			}
			if !found || g.ways[wa].id < g.ways[best].id {
				best = wa
				found = true
			}
		}
	}
	if !found {
		return ""
	}
	return g.ways[best].name
}

func (g *Graph) Way(id int64) Way {
	w := &g.ways[g.wayIdx(id)]
	nodeIDs := make([]int64, len(w.nodes))
	for i, n := range w.nodes {
		nodeIDs[i] = g.nodes[n].id
	}
	return Way{
		ID:      w.id,
		Name:    w.name,
		Highway: w.highway,
		Speed:   w.speed,
		Valid:   w.valid,
		NodeIDs: nodeIDs,
	}
}

// ForEachWay iterasi semua way sesuai urutan AddWay. berhenti kalau fn return false.
func (g *Graph) ForEachWay(fn func(w Way) bool) {
	for i := range g.ways {
		if !fn(g.Way(g.ways[i].id)) {
			return
		}
	}
}

// NodeWays id way yang memuat node, urut dari id terkecil.
func (g *Graph) NodeWays(id int64) []int64 {
	n := &g.nodes[g.nodeIdx(id)]
	ways := make([]int64, len(n.ways))
	for i, w := range n.ways {
		ways[i] = g.ways[w].id
	}
	sort.Slice(ways, func(i, j int) bool { return ways[i] < ways[j] })
	return ways
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumWays() int {
	return len(g.ways)
}

func (g *Graph) NumVertices() int {
	if !g.frozen {
		return len(g.nodes)
	}
	return len(g.vertices)
}

func (g *Graph) NumEdges() int {
	count := 0
	for i := range g.nodes {
		count += len(g.nodes[i].adj)
	}
	return count / 2
}

// Bounds bounding box (south-west, north-east) dari semua vertex.
func (g *Graph) Bounds() (Coordinate, Coordinate) {
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	empty := true
	g.ForEachVertex(func(id int64, lon, lat float64) bool {
		empty = false
		minLat = math.Min(minLat, lat)
		minLon = math.Min(minLon, lon)
		maxLat = math.Max(maxLat, lat)
		maxLon = math.Max(maxLon, lon)
		return true
	})
	if empty {
		return Coordinate{}, Coordinate{}
	}
	return NewCoordinate(minLat, minLon), NewCoordinate(maxLat, maxLon)
}

// FindNodesByName node (termasuk yang di prune) yang nama bersihnya diawali prefix.
func (g *Graph) FindNodesByName(prefix string, limit int) []int64 {
	cleanPrefix := util.CleanString(prefix)
	if cleanPrefix == "" {
		return []int64{}
	}

	type match struct {
		name string
		id   int64
	}
	matches := make([]match, 0)
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.name == "" {
			continue
		}
		cleanName := util.CleanString(n.name)
		if strings.HasPrefix(cleanName, cleanPrefix) {
			matches = append(matches, match{cleanName, n.id})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].name == matches[j].name {
			return matches[i].id < matches[j].id
		}
		return matches[i].name < matches[j].name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.id
	}
	return ids
}
