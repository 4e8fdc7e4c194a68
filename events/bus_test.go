package events

import (
	"testing"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(func(ev Event) { got = append(got, ev) })

	bus.Emit(Event{Type: EventPluginStarted, PluginID: "viewer.zoom"})
	bus.Emit(Event{Type: EventPluginUnregistered, PluginID: "viewer.zoom"})

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != EventPluginStarted || got[1].Type != EventPluginUnregistered {
		t.Errorf("events delivered out of order: %v, %v", got[0].Type, got[1].Type)
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Error("emitted events must carry id and timestamp")
	}
	if got[0].ID == got[1].ID {
		t.Error("event ids must be unique")
	}
}

func TestBusHistoryFilter(t *testing.T) {
	bus := NewBus()
	bus.Emit(Event{Type: EventPluginStarted, PluginID: "a"})
	bus.Emit(Event{Type: EventPluginStarted, PluginID: "b"})
	bus.Emit(Event{Type: EventPluginUnregistered, PluginID: "a"})

	if n := len(bus.History("")); n != 3 {
		t.Errorf("expected 3 events in history, got %d", n)
	}
	forA := bus.History("a")
	if len(forA) != 2 {
		t.Fatalf("expected 2 events for plugin a, got %d", len(forA))
	}
	if forA[1].Type != EventPluginUnregistered {
		t.Errorf("history must be oldest-first, got %v", forA[1].Type)
	}
}

func TestBusHistoryBounded(t *testing.T) {
	bus := NewBusWithHistory(4)
	for i := 0; i < 10; i++ {
		bus.Emit(Event{Type: EventPluginStarted, PluginID: "a"})
	}
	if n := len(bus.History("")); n != 4 {
		t.Errorf("expected history capped at 4, got %d", n)
	}
}
