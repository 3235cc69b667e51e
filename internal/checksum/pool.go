package checksum

import (
	"context"
	"io"
	"sync"
)

// Job is one input to hash. Open is called once, from a worker goroutine.
type Job struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Result is the outcome of one [Job].
type Result struct {
	Name   string
	Digest string
	Size   int64
	Err    error
}

// SumAll hashes jobs with up to workers goroutines and returns the results in
// job order. onDone, when non-nil, is called after each job completes; calls
// are serialized.
func SumAll(ctx context.Context, jobs []Job, a Algorithm, workers int, onDone func(Result)) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}
	workers = max(1, min(workers, len(jobs)))

	work := make(chan int, len(jobs))
	for i := range jobs {
		work <- i
	}
	close(work)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				res := sumJob(ctx, jobs[i], a)
				results[i] = res
				if onDone != nil {
					mu.Lock()
					onDone(res)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return results
}

func sumJob(ctx context.Context, job Job, a Algorithm) Result {
	res := Result{Name: job.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	rc, err := job.Open()
	if err != nil {
		res.Err = err
		return res
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(rc)

	res.Digest, res.Size, res.Err = Sum(ctx, rc, a)
	return res
}
