package assets

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/trailhead/internal/logger"
)

// Request names one asset to load.
type Request struct {
	Key  string // caller's handle, e.g. "character"
	Path string
}

// Result is the outcome of one request. Exactly one of Model and Err is set.
type Result struct {
	Request
	Model *Model
	Err   error
}

// Batch loads a fixed set of requests concurrently.
type Batch struct {
	loader   Loader
	requests []Request
	results  []Result

	done     atomic.Int32
	finished chan struct{}
	once     sync.Once
}

// NewBatch prepares a batch; nothing is loaded until Start.
func NewBatch(loader Loader, requests []Request) *Batch {
	return &Batch{
		loader:   loader,
		requests: requests,
		results:  make([]Result, len(requests)),
		finished: make(chan struct{}),
	}
}

// Start issues every load at once and returns immediately. Calling Start
// more than once has no further effect.
func (b *Batch) Start() {
	b.once.Do(func() {
		go b.run()
	})
}

func (b *Batch) run() {
	log := logger.Named("assets")
	start := time.Now()

	var g errgroup.Group
	for i, req := range b.requests {
		g.Go(func() error {
			m, err := b.loader.Load(req.Path)
			b.results[i] = Result{Request: req, Model: m, Err: err}
			if err == nil && m == nil {
				b.results[i].Err = ErrNoMesh
			}
			b.done.Add(1)
			// Failures are reported per result; the group never cancels.
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range b.results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("asset batch finished",
		zap.Int("requests", len(b.requests)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	close(b.finished)
}

// Total returns the number of requests.
func (b *Batch) Total() int { return len(b.requests) }

// Done returns how many requests have completed, successfully or not.
func (b *Batch) Done() int { return int(b.done.Load()) }

// Finished reports whether every request has completed.
func (b *Batch) Finished() bool {
	select {
	case <-b.finished:
		return true
	default:
		return false
	}
}

// Wait blocks until every request has completed and returns the results in
// request order. Start must have been called.
func (b *Batch) Wait() []Result {
	<-b.finished
	return b.results
}

// LoadAll loads every request concurrently and waits for all of them.
func LoadAll(loader Loader, requests []Request) []Result {
	b := NewBatch(loader, requests)
	b.Start()
	return b.Wait()
}

// Find returns the result for key.
func Find(results []Result, key string) (Result, bool) {
	for _, r := range results {
		if r.Key == key {
			return r, true
		}
	}
	return Result{}, false
}
