package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph(t *testing.T) {
	mapFile := filepath.Join(t.TempDir(), "sample.osm")
	require.NoError(t, os.WriteFile(mapFile, []byte(sampleOSM), 0o644))

	g, buildStats, parseStats, err := BuildGraph(context.Background(), mapFile, nil)
	require.NoError(t, err)
	assert.True(t, g.IsFrozen())
	assert.Equal(t, 3, buildStats.RoutableVertices)
	assert.Equal(t, 2, parseStats.Ways)

	// footway ikut dihitung valid kalau ada di allow-list
	g, buildStats, _, err = BuildGraph(context.Background(), mapFile, []string{"residential", "footway"})
	require.NoError(t, err)
	assert.Equal(t, 2, buildStats.ValidWays)
	assert.True(t, g.IsVertex(3))

	_, _, _, err = BuildGraph(context.Background(), filepath.Join(t.TempDir(), "missing.osm"), nil)
	assert.Error(t, err)
}

func TestSpeedReport(t *testing.T) {
	b := datastructure.NewGraphBuilder(nil)
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, b.AddNode(i, float64(i), 0, ""))
	}
	ways := []datastructure.WayEvent{
		{ID: 1, NodeIDs: []int64{1, 2}, Tags: map[string]string{"highway": "residential", "maxspeed": "20"}},
		{ID: 2, NodeIDs: []int64{2, 3}, Tags: map[string]string{"highway": "residential"}},
		{ID: 3, NodeIDs: []int64{3, 4}, Tags: map[string]string{"highway": "primary", "maxspeed": "none"}},
		{ID: 4, NodeIDs: []int64{1, 4}, Tags: map[string]string{"highway": "footway"}},
	}
	for _, w := range ways {
		require.NoError(t, b.AddWay(w))
	}
	g, _ := b.Finish()

	report := SpeedReport(g)
	require.Len(t, report, 2)

	assert.Equal(t, "residential", report[0].Highway)
	assert.Equal(t, 2, report[0].Ways)
	assert.Equal(t, 1, report[0].TaggedWays)
	assert.InDelta(t, 25.0, report[0].AvgSpeedKMH, 1e-9)

	assert.Equal(t, "primary", report[1].Highway)
	assert.Equal(t, 0, report[1].TaggedWays)
	assert.InDelta(t, 65.0, report[1].AvgSpeedKMH, 1e-9)
}
