package concurrent

import "sync"

type JobFunc[T any] func(job T)

// BackgroundWorker runs jobFunc on every triggered job using a fixed number of goroutines.
type BackgroundWorker[T any] struct {
	workers   int
	msgC      chan T
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T]
}

func NewBackgroundWorker[T any](workers, buffer int, jobFunc JobFunc[T]) *BackgroundWorker[T] {
	if workers < 1 {
		workers = 1
	}
	return &BackgroundWorker[T]{
		workers: workers,
		msgC:    make(chan T, buffer),
		jobFunc: jobFunc,
	}
}

// TriggerProcessing queues job. blocks while the buffer is full.
func (bw *BackgroundWorker[T]) TriggerProcessing(job T) {
	bw.msgC <- job
}

func (bw *BackgroundWorker[T]) Start() {
	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for job := range bw.msgC {
				bw.jobFunc(job)
			}
		}()
	}
}

// Close waits until every queued job is processed. no job may be triggered afterwards.
func (bw *BackgroundWorker[T]) Close() {
	close(bw.msgC)
	bw.waitGroup.Wait()
}

// Map applies fn to every job with at most workers goroutines. results[i] = fn(jobs[i]).
func Map[T, G any](workers int, jobs []T, fn func(T) G) []G {
	results := make([]G, len(jobs))
	bw := NewBackgroundWorker(workers, len(jobs), func(i int) {
		results[i] = fn(jobs[i])
	})
	bw.Start()
	for i := range jobs {
		bw.TriggerProcessing(i)
	}
	bw.Close()
	return results
}
