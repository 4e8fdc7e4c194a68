package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultHistorySize bounds the in-memory event history of a bus.
const defaultHistorySize = 256

// Bus is a synchronous in-process event bus with a bounded history. The zero
// value is not usable; create one with NewBus.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	history   []Event
	maxKeep   int
}

// NewBus creates an event bus with the default history size.
func NewBus() *Bus {
	return NewBusWithHistory(defaultHistorySize)
}

// NewBusWithHistory creates an event bus keeping at most maxKeep past events.
// A maxKeep of zero disables history.
func NewBusWithHistory(maxKeep int) *Bus {
	if maxKeep < 0 {
		maxKeep = 0
	}
	return &Bus{maxKeep: maxKeep}
}

// Subscribe registers a listener for all subsequent events.
func (b *Bus) Subscribe(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Emit assigns the event an id and timestamp, records it in the history, and
// fans it out to every listener in subscription order.
func (b *Bus) Emit(ev Event) {
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now()

	b.mu.Lock()
	if b.maxKeep > 0 {
		b.history = append(b.history, ev)
		if len(b.history) > b.maxKeep {
			b.history = b.history[len(b.history)-b.maxKeep:]
		}
	}
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// History returns a copy of the retained events, oldest first. When
// pluginID is non-empty only that plugin's events are returned.
func (b *Bus) History(pluginID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Event, 0, len(b.history))
	for _, ev := range b.history {
		if pluginID == "" || ev.PluginID == pluginID {
			out = append(out, ev)
		}
	}
	return out
}
