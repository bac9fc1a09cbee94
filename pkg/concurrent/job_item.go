package concurrent

// DistanceMatrixParam satu sel distance matrix: shortest path dari source ke target.
type DistanceMatrixParam struct {
	SourceIdx int
	TargetIdx int
	From      int64
	To        int64
}

func NewDistanceMatrixParam(sourceIdx, targetIdx int, from, to int64) DistanceMatrixParam {
	return DistanceMatrixParam{
		SourceIdx: sourceIdx,
		TargetIdx: targetIdx,
		From:      from,
		To:        to,
	}
}

// SnapParam snap satu koordinat ke node terdekat.
type SnapParam struct {
	Idx int
	Lat float64
	Lon float64
}

func NewSnapParam(idx int, lat, lon float64) SnapParam {
	return SnapParam{
		Idx: idx,
		Lat: lat,
		Lon: lon,
	}
}

type JobI interface {
	DistanceMatrixParam | SnapParam
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
