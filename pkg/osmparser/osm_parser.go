package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

type Format int

const (
	FormatPBF Format = iota
	FormatXML
)

var ErrUnknownFormat = errors.New("unknown openstreetmap file format")

// GraphBuilder consumer event dari parser.
type GraphBuilder interface {
	AddNode(id int64, lon, lat float64, name string) error
	AddWay(way datastructure.WayEvent) error
}

type ParseStats struct {
	Ways       int
	Nodes      int
	NamedNodes int
}

/*
OsmParser. scan file osm dua kali:
 1. kumpulkan node id yang jadi member way jalan.
 2. kirim node yang jadi member (atau punya nama) ke builder, lalu way nya.

file osm standar urut node, way, relation, jadi semua node sudah terdaftar di builder sebelum way pertama.
*/
type OsmParser struct {
	builder    GraphBuilder
	wayNodeMap map[int64]struct{}
	stats      ParseStats
}

func NewOSMParser(builder GraphBuilder) *OsmParser {
	return &OsmParser{
		builder:    builder,
		wayNodeMap: make(map[int64]struct{}),
	}
}

func (p *OsmParser) Stats() ParseStats {
	return p.stats
}

func FormatFromPath(mapFile string) (Format, error) {
	name := strings.ToLower(filepath.Base(mapFile))
	switch {
	case strings.HasSuffix(name, ".pbf"):
		return FormatPBF, nil
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return FormatXML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, mapFile)
	}
}

func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) error {
	format, err := FormatFromPath(mapFile)
	if err != nil {
		return err
	}
	f, err := os.Open(mapFile)
	if err != nil {
		return fmt.Errorf("open osm file %s: %w", mapFile, err)
	}
	defer f.Close()

	log.Printf("reading osm file %s", mapFile)
	return p.Parse(ctx, f, format)
}

func (p *OsmParser) Parse(ctx context.Context, r io.ReadSeeker, format Format) error {
	if err := p.scan(ctx, r, format, p.collectWayNodes); err != nil {
		return fmt.Errorf("scan openstreetmap ways: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := p.scan(ctx, r, format, p.emit); err != nil {
		return fmt.Errorf("scan openstreetmap objects: %w", err)
	}

	log.Printf("total openstreetmap ways: %d, nodes: %d (%d named)", p.stats.Ways, p.stats.Nodes, p.stats.NamedNodes)
	return nil
}

func newScanner(ctx context.Context, r io.Reader, format Format) (osm.Scanner, error) {
	switch format {
	case FormatPBF:
		// must not be parallel
		return osmpbf.New(ctx, r, 1), nil
	case FormatXML:
		return osmxml.New(ctx, r), nil
	default:
		return nil, ErrUnknownFormat
	}
}

func (p *OsmParser) scan(ctx context.Context, r io.Reader, format Format, fn func(o osm.Object) error) error {
	scanner, err := newScanner(ctx, r, format)
	if err != nil {
		return err
	}
	defer scanner.Close()

	for scanner.Scan() {
		if err := fn(scanner.Object()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (p *OsmParser) collectWayNodes(o osm.Object) error {
	way, ok := o.(*osm.Way)
	if !ok || !acceptOsmWay(way) {
		return nil
	}
	for _, node := range way.Nodes {
		p.wayNodeMap[int64(node.ID)] = struct{}{}
	}
	return nil
}

func (p *OsmParser) emit(o osm.Object) error {
	switch obj := o.(type) {
	case *osm.Node:
		name := obj.Tags.Find("name")
		if _, ok := p.wayNodeMap[int64(obj.ID)]; !ok && name == "" {
			return nil
		}
		if (p.stats.Nodes+1)%50000 == 0 {
			log.Printf("processing openstreetmap nodes: %d...", p.stats.Nodes+1)
		}
		p.stats.Nodes++
		if name != "" {
			p.stats.NamedNodes++
		}
		return p.builder.AddNode(int64(obj.ID), obj.Lon, obj.Lat, name)

	case *osm.Way:
		if !acceptOsmWay(obj) {
			return nil
		}
		if (p.stats.Ways+1)%50000 == 0 {
			log.Printf("processing openstreetmap ways: %d...", p.stats.Ways+1)
		}
		p.stats.Ways++

		nodeIDs := make([]int64, 0, len(obj.Nodes))
		for _, node := range obj.Nodes {
			nodeIDs = append(nodeIDs, int64(node.ID))
		}
		return p.builder.AddWay(datastructure.WayEvent{
			ID:      int64(obj.ID),
			NodeIDs: nodeIDs,
			Tags:    obj.Tags.Map(),
		})
	}
	return nil
}

// acceptOsmWay way jalan (punya highway tag). validitas (boleh dilewati atau tidak) ditentukan builder.
func acceptOsmWay(way *osm.Way) bool {
	if len(way.Nodes) == 0 {
		return false
	}
	return way.Tags.Find("highway") != "" || way.Tags.Find("route") == "road" || way.Tags.Find("junction") != ""
}
