package eventbus

import "testing"

type testEvent struct {
	id string
}

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(testEvent{id: "r-1"})
	ev := <-ch
	if e, ok := ev.(testEvent); !ok || e.id != "r-1" {
		t.Fatalf("expected testEvent r-1, got %v", ev)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	ch := bus.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel from closed bus")
	}
	bus.Unsubscribe(ch)
}
