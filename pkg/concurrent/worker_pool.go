package concurrent

import "sync"

/*
WorkerPool. pemakaian:

	workers := NewWorkerPool[T, G](numWorkers, jobCount)
	workers.AddJob(...) // sebanyak jobCount
	workers.Close()
	workers.Start(fn)
	workers.Wait()
	for res := range workers.CollectResults() { ... }

job & result channel di buffer sebanyak jobCount, jadi AddJob sebelum Start tidak block.
*/
type WorkerPool[T JobI, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan G
	wg         sync.WaitGroup
	jobID      int
}

func NewWorkerPool[T JobI, G any](numWorkers, jobCount int) *WorkerPool[T, G] {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if jobCount < 0 {
		jobCount = 0
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobCount),
		results:    make(chan G, jobCount),
	}
}

func (wp *WorkerPool[T, G]) AddJob(item T) {
	wp.jobQueue <- Job[T]{ID: wp.jobID, JobItem: item}
	wp.jobID++
}

// Close tidak ada job baru lagi. worker berhenti setelah job queue kosong.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Start(fn JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(fn)
	}
}

func (wp *WorkerPool[T, G]) worker(fn JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- fn(job.JobItem)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}
