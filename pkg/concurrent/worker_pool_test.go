package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	n := 50
	workers := NewWorkerPool[DistanceMatrixParam, int64](4, n)
	for i := 0; i < n; i++ {
		workers.AddJob(NewDistanceMatrixParam(i, i, int64(i), int64(i*2)))
	}
	workers.Close()
	workers.Start(func(job DistanceMatrixParam) int64 {
		return job.From + job.To
	})
	workers.Wait()

	got := make([]int64, 0, n)
	for res := range workers.CollectResults() {
		got = append(got, res)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	assert.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, int64(3*i), got[i])
	}
}

func TestWorkerPoolNoJobs(t *testing.T) {
	workers := NewWorkerPool[SnapParam, int](0, 0)
	workers.Close()
	workers.Start(func(job SnapParam) int { return job.Idx })
	workers.Wait()

	count := 0
	for range workers.CollectResults() {
		count++
	}
	assert.Equal(t, 0, count)
}
