package voronoi

import "sync"

// Scheduler serializes render jobs: at most one runs at a time, and a job
// submitted while another is running is deferred until it completes. Only
// the most recent deferred job is kept.
type Scheduler struct {
	mu      sync.Mutex
	running bool
	pending func()
}

// Submit runs job on the calling goroutine when the scheduler is idle, then
// drains any job deferred meanwhile, and reports true. If a job is already
// running, job replaces the deferred one and Submit returns false
// immediately.
func (s *Scheduler) Submit(job func()) bool {
	s.mu.Lock()
	if s.running {
		s.pending = job
		s.mu.Unlock()
		return false
	}
	s.running = true
	s.mu.Unlock()

	for job != nil {
		job()

		s.mu.Lock()
		job, s.pending = s.pending, nil
		if job == nil {
			s.running = false
		}
		s.mu.Unlock()
	}
	return true
}

// Busy reports whether a job is running.
func (s *Scheduler) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
