package multiplayer

import "testing"

func TestChannelSessionDelivery(t *testing.T) {
	s := NewChannelSession("alice-1", 4)

	s.Send(LobbyCreatedEvent{Code: "ABC123"})

	select {
	case evt := <-s.Events():
		created, ok := evt.(LobbyCreatedEvent)
		if !ok {
			t.Fatalf("Unexpected event type %T", evt)
		}
		if created.Code != "ABC123" {
			t.Errorf("Code = %q, want ABC123", created.Code)
		}
	default:
		t.Fatal("Event should be buffered")
	}
}

func TestChannelSessionDropsOldestWhenFull(t *testing.T) {
	s := NewChannelSession("alice-1", 2)

	s.Send(SnapshotEvent{Tick: 1})
	s.Send(SnapshotEvent{Tick: 2})
	s.Send(SnapshotEvent{Tick: 3}) // Buffer full, tick 1 is dropped

	first := <-s.Events()
	if snap := first.(SnapshotEvent); snap.Tick != 2 {
		t.Errorf("First buffered tick = %d, want 2 (oldest dropped)", snap.Tick)
	}
	second := <-s.Events()
	if snap := second.(SnapshotEvent); snap.Tick != 3 {
		t.Errorf("Second buffered tick = %d, want 3", snap.Tick)
	}
}

func TestChannelSessionSendAfterClose(t *testing.T) {
	s := NewChannelSession("alice-1", 4)

	s.Close()
	s.Close() // Idempotent

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed")
	}

	// Sends after close are silently discarded
	s.Send(SnapshotEvent{Tick: 1})
	select {
	case <-s.Events():
		t.Error("Closed session should not buffer events")
	default:
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()

	a := NewChannelSession("alice-1", 4)
	b := NewChannelSession("bob-2", 4)
	r.Register(a)
	r.Register(b)

	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}

	got, ok := r.Get("alice-1")
	if !ok || got.ID() != "alice-1" {
		t.Errorf("Get(alice-1) = %v, %v", got, ok)
	}

	r.Unregister("alice-1")
	if _, ok := r.Get("alice-1"); ok {
		t.Error("Unregistered session should not resolve")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d after unregister, want 1", r.Count())
	}
}

func TestJoinCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateJoinCode()
		if len(code) != 6 {
			t.Fatalf("Code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				t.Fatalf("Code %q contains %q", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("Codes should vary across generations")
	}
}
