// Package worker provides a worker pool for batch encoding and decoding.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessstego-go/internal/chess"
)

// Job is one input of a batch run.
type Job struct {
	Index int         // Position in the batch
	Input string      // Message to encode or artifact text to decode
	Game  *chess.Game // Already parsed game, when decoding a PGN stream
}

// Result is the outcome of one job.
type Result struct {
	Index  int
	Output string
	Err    error
}

// ProcessFunc is the function signature for processing a job.
type ProcessFunc func(job Job) Result

// Pool manages a pool of workers for parallel codec calls.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan Job
	resultChan  chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan Job, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes jobs from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(job)
	}
}

// Submit submits a job for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(job Job) {
	p.workChan <- job
}

// TrySubmit attempts to submit a job without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- job:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new jobs.
// Jobs already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run processes jobs on a new pool and returns one result per job, in
// job order whatever order the workers finish in. Each job's Index is set
// to its position in jobs.
func Run(jobs []Job, numWorkers, bufferSize int, processFunc ProcessFunc) []Result {
	pool := NewPool(numWorkers, bufferSize, func(job Job) Result {
		result := processFunc(job)
		result.Index = job.Index
		return result
	})
	pool.Start()

	go func() {
		for i, job := range jobs {
			job.Index = i
			pool.Submit(job)
		}
		pool.Close()
	}()

	results := make([]Result, len(jobs))
	for result := range pool.Results() {
		results[result.Index] = result
	}
	return results
}
