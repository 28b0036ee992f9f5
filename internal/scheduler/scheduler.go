package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/GibLife_Go/internal/worker"
)

// Enqueuer accepts jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler runs jobs on fixed intervals through a worker pool
type Scheduler struct {
	pool    Enqueuer
	quit    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	entries []entry
	started bool
	stopped bool
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Jobs registered after
// Start begin immediately.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	e := entry{interval: interval, job: job}
	s.entries = append(s.entries, e)
	if s.started {
		s.run(e)
	}
}

// Start begins ticking every registered job. Each job also runs once
// immediately so gauges are populated before the first interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.run(e)
	}
}

// run must be called with mu held
func (s *Scheduler) run(e entry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		s.pool.Enqueue(e.job)
		for {
			select {
			case <-ticker.C:
				// A full pool drops this run; the next tick retries
				s.pool.Enqueue(e.job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.quit)
	s.mu.Unlock()
	s.wg.Wait()
}
