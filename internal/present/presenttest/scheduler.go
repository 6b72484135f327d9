// Package presenttest provides a deterministic scheduler for tests of code
// built on the presentation controller.
package presenttest

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type entry struct {
	due time.Duration
	seq int
	msg tea.Msg
}

// FakeScheduler records scheduled messages against a virtual clock. The
// commands it returns are nil; messages are delivered by Advance.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []entry
}

// New returns a FakeScheduler at time zero.
func New() *FakeScheduler {
	return &FakeScheduler{}
}

// Schedule implements present.Scheduler.
func (f *FakeScheduler) Schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	f.pending = append(f.pending, entry{due: f.now + d, seq: f.seq, msg: msg})
	return nil
}

// Now returns the virtual time.
func (f *FakeScheduler) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Pending returns the number of undelivered messages.
func (f *FakeScheduler) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Advance moves the clock forward by d, delivering every message that falls
// due in time order. Messages scheduled during delivery are delivered too if
// they fall due before the target time.
func (f *FakeScheduler) Advance(d time.Duration, deliver func(tea.Msg)) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		e, ok := f.next(target)
		if !ok {
			break
		}
		deliver(e.msg)
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// Drain delivers everything pending, moving the clock as needed, up to limit
// deliveries. It returns the number delivered.
func (f *FakeScheduler) Drain(limit int, deliver func(tea.Msg)) int {
	n := 0
	for ; n < limit; n++ {
		e, ok := f.next(-1)
		if !ok {
			break
		}
		deliver(e.msg)
	}
	return n
}

// next pops the earliest entry due at or before target; a negative target
// means any entry.
func (f *FakeScheduler) next(target time.Duration) (entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == 0 {
		return entry{}, false
	}
	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].due != f.pending[j].due {
			return f.pending[i].due < f.pending[j].due
		}
		return f.pending[i].seq < f.pending[j].seq
	})
	e := f.pending[0]
	if target >= 0 && e.due > target {
		return entry{}, false
	}
	f.pending = f.pending[1:]
	if e.due > f.now {
		f.now = e.due
	}
	return e, true
}
