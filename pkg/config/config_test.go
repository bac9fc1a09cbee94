package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestReadConfig(t *testing.T) {
	file := writeConfig(t, `
server:
  listen-addr: ":6000"
graph:
  map-file: berkeley.osm
  allowed-highways: [primary, residential]
snap:
  index: rtree
search:
  timeout: 250ms
  simplify-tolerance-meters: 0
cache:
  engine: pebble
  path: /tmp/osmroute-cache
workers: 3
`)

	cfg, err := ReadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.Server.ListenAddr)
	assert.Equal(t, "berkeley.osm", cfg.Graph.MapFile)
	assert.Equal(t, []string{"primary", "residential"}, cfg.Graph.AllowedHighways)
	assert.Equal(t, SNAP_RTREE, cfg.Snap.Index)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Timeout)
	assert.Equal(t, 0.0, cfg.Search.SimplifyToleranceMeters)
	assert.Equal(t, CACHE_PEBBLE, cfg.Cache.Engine)
	assert.Equal(t, 3, cfg.Workers)

	// tidak ada di file, tetap default
	assert.Equal(t, 9, cfg.Snap.H3Resolution)
	assert.Equal(t, "astar", cfg.Search.Algorithm)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadConfig(writeConfig(t, "snap:\n  index: quadtree\n"))
	assert.ErrorContains(t, err, "unknown snap index")

	_, err = ReadConfig(writeConfig(t, "cache:\n  engine: pebble\n"))
	assert.ErrorContains(t, err, "needs a path")

	_, err = ReadConfig(writeConfig(t, "search:\n  simplify-tolerance-meters: -1\n"))
	assert.ErrorContains(t, err, "simplify tolerance")

	_, err = ReadConfig(writeConfig(t, "workers: 0\n"))
	assert.Error(t, err)
}

func TestEnumYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Snap.Index = SNAP_LINEAR
	cfg.Cache.Engine = CACHE_BADGER

	bb, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(bb), "index: linear")
	assert.Contains(t, string(bb), "engine: badger")

	var got Config
	require.NoError(t, yaml.Unmarshal(bb, &got))
	assert.Equal(t, cfg.Snap.Index, got.Snap.Index)
	assert.Equal(t, cfg.Cache.Engine, got.Cache.Engine)
}
