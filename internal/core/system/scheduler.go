package system

import (
	"sort"
	"time"
)

// Scheduler holds delayed continuations measured in simulated time. Time only
// moves when the Runner ticks it, so a stopped loop never fires anything.
// Continuations must re-check whatever state they depend on when they run.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []task
}

type task struct {
	at  time.Duration
	seq uint64
	fn  func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Phase() Phase { return PhaseSchedule }

func (s *Scheduler) Update(dt time.Duration) { s.Advance(dt) }

// After queues fn to run once d of simulated time has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, task{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward and runs every due task in deadline order.
// Tasks queued by a running task wait for a later Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.at <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}

// CancelAll drops every pending continuation.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

func (s *Scheduler) Pending() int { return len(s.tasks) }

func (s *Scheduler) Now() time.Duration { return s.now }
