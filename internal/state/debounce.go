package state

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of calls per key into one call after a quiet period.
type Debouncer struct {
	timers map[string]*time.Timer
	gens   map[string]uint64
	delay  time.Duration
	mu     sync.Mutex
}

// NewDebouncer creates a debouncer that waits delay after the last trigger.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		timers: make(map[string]*time.Timer),
		gens:   make(map[string]uint64),
		delay:  delay,
	}
}

// Trigger schedules fn for key, replacing any call still pending for key.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	d.gens[key]++
	gen := d.gens[key]

	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gens[key] == gen
		if current {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Stop drops every pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key := range d.timers {
		d.cancelLocked(key)
	}
}

func (d *Debouncer) cancelLocked(key string) {
	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}

	// A callback that already fired but has not run yet sees a stale generation.
	d.gens[key]++
}
