package redisconn

import "sync"

// event is the cooperative signalling primitive of spec §4.8: Set is
// idempotent and never loses a wakeup to a concurrent setter, Wait
// suspends until Set has been observed and does not auto-clear, and Clear
// is called explicitly by the waiter once it has drained whatever Set
// announced.
//
// The C++ source runs Connector/Writer/Reader as three coroutines on one
// single-threaded strand, so only one of them ever touches an event at a
// time. Go schedules Writer and Reader as genuinely concurrent goroutines
// instead (see DESIGN.md), so unlike the source, this event is safe for
// concurrent Set from arbitrary goroutines — that's the one place the port
// adds real synchronization the original didn't need.
type event struct {
	mu   sync.Mutex
	ch   chan struct{}
	isSet bool
}

func newEvent() *event {
	return &event{ch: make(chan struct{})}
}

func (e *event) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isSet {
		e.isSet = true
		close(e.ch)
	}
}

func (e *event) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isSet {
		e.isSet = false
		e.ch = make(chan struct{})
	}
}

// Wait returns the channel to select on; it's closed exactly when the event
// becomes set. Exposing the channel (rather than blocking inside Wait)
// lets callers also select on a done/cancellation channel.
func (e *event) Wait() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ch
}
