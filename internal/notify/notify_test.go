package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler records timers and fires them on demand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[len(s.timers)-1]
}

// fire runs a timer's callback the way time.AfterFunc would, even if it was
// stopped too late to prevent it.
func (t *fakeTimer) fire() {
	t.fired = true
	t.f()
}

func newTestManager() (*Manager, *fakeScheduler) {
	s := &fakeScheduler{}
	return NewManager(WithScheduler(s)), s
}

func TestShowUsesDefaultDuration(t *testing.T) {
	m, s := newTestManager()

	h := m.Show("Saving score...", 0)
	require.NotEmpty(t, h)
	assert.Equal(t, DefaultDuration, s.last().d)
	assert.Equal(t, []Toast{{ID: h, Message: "Saving score..."}}, m.Active())

	m.Show("custom", 5*time.Second)
	assert.Equal(t, 5*time.Second, s.last().d)
}

func TestHandlesAreUnique(t *testing.T) {
	m, _ := newTestManager()

	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := m.Show("x", 0)
		assert.False(t, seen[h], "duplicate handle %s", h)
		seen[h] = true
	}
}

func TestToastsExpireIndependently(t *testing.T) {
	m, s := newTestManager()

	first := m.Show("first", 0)
	firstTimer := s.last()
	second := m.Show("second", 0)
	secondTimer := s.last()

	secondTimer.fire()
	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, first, active[0].ID)

	firstTimer.fire()
	assert.Empty(t, m.Active())

	// Expired handles are unknown now
	m.Update(second, "late", 0)
	m.Dismiss(first)
	assert.Equal(t, 0, m.Len())
}

func TestUpdateRestartsTimer(t *testing.T) {
	m, s := newTestManager()

	h := m.Show("Saving score...", 0)
	oldTimer := s.last()

	m.Update(h, "Score saved!", 3*time.Second)
	newTimer := s.last()

	assert.True(t, oldTimer.stopped)
	assert.Equal(t, 3*time.Second, newTimer.d)
	assert.Equal(t, "Score saved!", m.Active()[0].Message)

	// A stale expiry that raced the update is ignored
	oldTimer.fire()
	require.Equal(t, 1, m.Len())

	newTimer.fire()
	assert.Equal(t, 0, m.Len())
}

func TestDismissCancelsTimer(t *testing.T) {
	m, s := newTestManager()

	keep := m.Show("keep", 0)
	h := m.Show("Loading leaderboard...", 0)
	timer := s.last()

	m.Dismiss(h)
	assert.True(t, timer.stopped)
	require.Len(t, m.Active(), 1)
	assert.Equal(t, keep, m.Active()[0].ID)

	// Dismissing twice or an unknown handle is harmless
	m.Dismiss(h)
	m.Dismiss(Handle("nope"))
	m.Update(Handle("nope"), "x", 0)
	assert.Equal(t, 1, m.Len())
}

func TestClear(t *testing.T) {
	m, s := newTestManager()
	m.Show("a", 0)
	m.Show("b", 0)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	for _, timer := range s.timers {
		assert.True(t, timer.stopped)
	}
}

func TestRealSchedulerExpires(t *testing.T) {
	m := NewManager(WithDefaultDuration(10 * time.Millisecond))
	m.Show("gone soon", 0)

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
}
