// Package notify manages short-lived toast messages. Toasts stack in the
// order they were shown and each expires on its own timer.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a toast stays up when no duration is given.
const DefaultDuration = 2000 * time.Millisecond

// Handle identifies a shown toast.
type Handle string

// Toast is a visible notification.
type Toast struct {
	ID      Handle
	Message string
}

// Timer is a cancellable scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type entry struct {
	toast Toast
	timer Timer
	gen   uint64 // Bumped on every Update so stale expiries are ignored
}

// Manager holds the active toasts. It is safe for concurrent use;
// expiries run on timer goroutines.
type Manager struct {
	mu       sync.Mutex
	entries  []*entry
	sched    Scheduler
	duration time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithScheduler replaces the time.AfterFunc scheduler.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.sched = s }
}

// WithDefaultDuration changes the duration used when Show or Update get zero.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.duration = d
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sched:    realScheduler{},
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show displays msg for d (the default duration when d <= 0) and returns
// its handle.
func (m *Manager) Show(msg string, d time.Duration) Handle {
	e := &entry{toast: Toast{ID: Handle(uuid.NewString()), Message: msg}}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, e)
	m.schedule(e, d)
	return e.toast.ID
}

// Update replaces the message of a visible toast and restarts its timer.
// Unknown or expired handles are ignored.
func (m *Manager) Update(h Handle, msg string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(h)
	if e == nil {
		return
	}
	e.timer.Stop()
	e.toast.Message = msg
	e.gen++
	m.schedule(e, d)
}

// Dismiss removes a toast now and cancels its timer.
// Unknown handles are ignored.
func (m *Manager) Dismiss(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(h)
	if e == nil {
		return
	}
	e.timer.Stop()
	m.remove(e)
}

// Active returns the visible toasts, oldest first.
func (m *Manager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.toast
	}
	return out
}

// Len returns the number of visible toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Clear dismisses every toast.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		e.timer.Stop()
	}
	m.entries = nil
}

// schedule arms the expiry timer. Caller holds mu.
func (m *Manager) schedule(e *entry, d time.Duration) {
	if d <= 0 {
		d = m.duration
	}
	gen := e.gen
	e.timer = m.sched.AfterFunc(d, func() { m.expire(e, gen) })
}

func (m *Manager) expire(e *entry, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.gen != gen {
		return
	}
	m.remove(e)
}

// find returns the entry for h. Caller holds mu.
func (m *Manager) find(h Handle) *entry {
	for _, e := range m.entries {
		if e.toast.ID == h {
			return e
		}
	}
	return nil
}

// remove drops e from the list. Caller holds mu.
func (m *Manager) remove(e *entry) {
	for i, cur := range m.entries {
		if cur == e {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}
