package service

import "testing"

func TestEventBusFanOut(t *testing.T) {
	bus := NewEventBus()
	a := bus.Subscribe()
	b := bus.Subscribe()
	defer bus.Unsubscribe(b)

	bus.Publish(Event{View: "map", Name: "move"})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.View != "map" || ev.Name != "move" {
				t.Fatalf("got %+v, want view=map name=move", ev)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}

	bus.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatal("unsubscribed channel should be closed")
	}

	// Publishing after an unsubscribe only reaches remaining subscribers.
	bus.Publish(Event{View: "map", Name: "markeradd"})
	select {
	case ev := <-b:
		if ev.Name != "markeradd" {
			t.Fatalf("got %+v, want markeradd", ev)
		}
	default:
		t.Fatal("remaining subscriber missed the event")
	}
}
