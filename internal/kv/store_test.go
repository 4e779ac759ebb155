package kv_test

import (
	"testing"
	"time"

	"storefront/internal/kv"
)

func memstore(t *testing.T) *kv.Store {
	t.Helper()
	s, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadMissingSlotKeepsDefault(t *testing.T) {
	s := memstore(t)

	got := "default"
	if ok := s.Load("theme", &got); ok {
		t.Fatal("want miss for empty store")
	}
	if got != "default" {
		t.Fatalf("default was clobbered: %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := memstore(t)

	type snapshot struct {
		Qty map[int]int `json:"qty"`
	}
	s.Save("cart:abc", snapshot{Qty: map[int]int{1: 2, 7: 1}})

	var got snapshot
	if ok := s.Load("cart:abc", &got); !ok {
		t.Fatal("want hit after save")
	}
	if got.Qty[1] != 2 || got.Qty[7] != 1 {
		t.Fatalf("bad round trip: %+v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := memstore(t)
	s.Save("theme", "light")
	s.Save("theme", "dark")

	var got string
	if ok := s.Load("theme", &got); !ok || got != "dark" {
		t.Fatalf("want dark, got %q (hit=%v)", got, ok)
	}
}

func TestDelete(t *testing.T) {
	s := memstore(t)
	s.Save("theme", "dark")
	s.Delete("theme")

	var got string
	if ok := s.Load("theme", &got); ok {
		t.Fatal("want miss after delete")
	}
}

func waitRaw(t *testing.T, c <-chan []byte) []byte {
	t.Helper()
	select {
	case raw := <-c:
		return raw
	case <-time.After(2 * time.Second):
		t.Fatal("no notification arrived")
		return nil
	}
}

func TestSubscribeSeesOtherWriters(t *testing.T) {
	s := memstore(t)

	sub := s.Subscribe("theme")
	defer sub.Close()

	s.Save("theme", "dark")
	if got := string(waitRaw(t, sub.C)); got != `"dark"` {
		t.Fatalf("want raw JSON \"dark\", got %s", got)
	}
}

func TestSaveFromSkipsOrigin(t *testing.T) {
	s := memstore(t)

	mine := s.Subscribe("cart:x")
	other := s.Subscribe("cart:x")
	defer mine.Close()
	defer other.Close()

	s.SaveFrom(mine, "cart:x", 42)

	if got := string(waitRaw(t, other.C)); got != "42" {
		t.Fatalf("other subscriber: want 42, got %s", got)
	}
	select {
	case raw := <-mine.C:
		t.Fatalf("origin got its own write back: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClosedSubscriptionStopsReceiving(t *testing.T) {
	s := memstore(t)
	sub := s.Subscribe("theme")
	sub.Close()

	s.Save("theme", "dark")
	select {
	case raw := <-sub.C:
		t.Fatalf("closed subscription received %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}
