package resource

import (
	"sync"
	"time"
)

// SearchDelay is how long input must settle before it propagates.
const SearchDelay = 300 * time.Millisecond

// Debouncer propagates a rapidly-changing string only after it has been
// stable for the configured delay. Trailing-edge: every Set restarts the
// timer, so a burst of inputs inside the window yields exactly one callback
// carrying the final value.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending string
	dirty   bool
	settle  func(string)
}

// NewDebouncer creates a Debouncer firing settle after delay of quiet.
// A non-positive delay falls back to SearchDelay.
func NewDebouncer(delay time.Duration, settle func(string)) *Debouncer {
	if delay <= 0 {
		delay = SearchDelay
	}
	return &Debouncer{delay: delay, settle: settle}
}

// Set records the latest value and restarts the settle timer.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = value
	d.dirty = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush settles the pending value immediately, cancelling any running timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending propagation without settling it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.dirty {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.dirty = false
	d.timer = nil
	d.mu.Unlock()

	d.settle(value)
}
