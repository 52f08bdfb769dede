// Package worker provides a worker pool for parallel position verification.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/crosscheck"
)

// WorkItem represents a position to be processed.
type WorkItem struct {
	Position Position
	Index    int // Original index for tracking
}

// ProcessResult represents the result of processing a position.
type ProcessResult struct {
	Position  Position
	Index     int
	Walks     []crosscheck.WalkResult // One per oracle
	Duplicate bool                    // Skipped as a repeat of an earlier position
	Skipped   bool                    // Never processed because the pool stopped
	Error     error
}

// Mismatch reports whether any oracle disagreed with the engine.
func (r ProcessResult) Mismatch() bool {
	for _, w := range r.Walks {
		if !w.OK() {
			return true
		}
	}
	return false
}

// ProcessFunc is the function signature for processing a work item.
// Each call must use its own board; the pool shares nothing between items.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel position processing.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
	stopWhen    func(ProcessResult) bool
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

// StopWhen makes Run stop the pool after the first result for which cond
// returns true.
func StopWhen(cond func(ProcessResult) bool) PoolOption {
	return func(p *Pool) {
		p.stopWhen = cond
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// processFunc is required; other settings have sensible defaults.
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
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
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
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run starts the pool, submits items, and returns one result per item in
// input order. Items drained after Stop come back with Skipped set.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	p.Start()
	go func() {
		for i, item := range items {
			item.Index = i
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, len(items))
	done := make([]bool, len(items))
	for r := range p.Results() {
		results[r.Index] = r
		done[r.Index] = true
		if p.stopWhen != nil && !p.IsStopped() && p.stopWhen(r) {
			p.Stop()
		}
	}

	for i, ok := range done {
		if !ok {
			results[i] = ProcessResult{Position: items[i].Position, Index: i, Skipped: true}
		}
	}
	return results
}
