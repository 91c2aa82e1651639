package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work. A non-nil error counts as a failure.
type Job func() error

// Pool runs jobs on a fixed number of workers. A single-worker pool runs jobs inline.
type Pool struct {
	wg     sync.WaitGroup
	work   chan Job
	close  func()
	done   atomic.Uint64
	failed atomic.Uint64
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan Job, numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for job := range pool.work {
				pool.run(job)
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

// Do queues job, blocking while every worker is busy. Do must not be called after Wait.
func (p *Pool) Do(job Job) {
	if p.work == nil {
		p.run(job)
		return
	}
	p.work <- job
}

func (p *Pool) run(job Job) {
	if err := job(); err != nil {
		p.failed.Add(1)
		return
	}
	p.done.Add(1)
}

// Wait stops accepting jobs and blocks until the queued ones finished. It returns how
// many jobs succeeded and how many failed.
func (p *Pool) Wait() (done, failed uint64) {
	p.close()
	p.wg.Wait()
	return p.done.Load(), p.failed.Load()
}
