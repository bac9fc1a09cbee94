package kv

import (
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// CachedRoute hasil shortest path yang disimpan di cache. Nodes kosong = unreachable.
type CachedRoute struct {
	Nodes []int64
	Dist  float64
}

func routeKey(from, to int64) []byte {
	return []byte(fmt.Sprintf("route:%d:%d", from, to))
}

func encodeRoute(route CachedRoute) ([]byte, error) {
	bb, err := binary.Marshal(route)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeRoute(bbCompressed []byte) (CachedRoute, error) {
	var route CachedRoute
	bb, err := decompress(bbCompressed)
	if err != nil {
		return route, err
	}
	err = binary.Unmarshal(bb, &route)
	return route, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
