// Package debounce delays a changing value until it has been stable for a
// fixed interval. Only the latest value is ever delivered.
//
// A Debouncer is owned by a single bubbletea model and must only be used from
// that model's Update; the commands it returns may run on any goroutine.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

// Msg carries a value that stayed unchanged for the full delay.
type Msg[T any] struct {
	Value T
	id    int64
	seq   int
}

// Debouncer restarts its wait on every Push.
type Debouncer[T any] struct {
	stop  chan struct{}
	delay time.Duration
	id    int64
	seq   int
}

// New returns a debouncer that settles after delay.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		id:    lastID.Add(1),
	}
}

// Delay returns the settle interval.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Push records v as the latest value and restarts the wait. Any pending
// timer is stopped. The returned command yields a Msg once the delay elapses
// without another Push, and yields nothing if it is superseded or stopped.
func (d *Debouncer[T]) Push(v T) tea.Cmd {
	d.cancel()
	d.seq++

	stop := make(chan struct{})
	d.stop = stop
	id, seq, delay := d.id, d.seq, d.delay

	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return Msg[T]{Value: v, id: id, seq: seq}
		case <-stop:
			return nil
		}
	}
}

// Settled returns the value carried by msg if msg is the delivery for this
// debouncer's latest Push.
func (d *Debouncer[T]) Settled(msg tea.Msg) (T, bool) {
	var zero T

	m, ok := msg.(Msg[T])
	if !ok || m.id != d.id || m.seq != d.seq {
		return zero, false
	}
	d.stop = nil
	return m.Value, true
}

// Pending reports whether a pushed value has not settled yet.
func (d *Debouncer[T]) Pending() bool {
	return d.stop != nil
}

// Stop cancels any pending wait. Messages already in flight are rejected by
// Settled. The debouncer may be reused after Stop.
func (d *Debouncer[T]) Stop() {
	d.cancel()
	d.seq++
}

func (d *Debouncer[T]) cancel() {
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}
