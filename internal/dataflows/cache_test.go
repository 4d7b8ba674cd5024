package dataflows

import (
	"testing"
	"time"
)

type cachedPayload struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

func TestCacheRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)
	params := map[string]string{"symbol": "AAPL"}

	var miss cachedPayload
	if cm.Get("test", "quote", params, &miss) {
		t.Fatal("cold cache reported a hit")
	}

	stored := cachedPayload{Symbol: "AAPL", Value: 189.5}
	if err := cm.Set("test", "quote", params, stored); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got cachedPayload
	if !cm.Get("test", "quote", params, &got) {
		t.Fatal("warm cache reported a miss")
	}
	if got != stored {
		t.Errorf("got %+v, want %+v", got, stored)
	}
}

func TestCacheKeyIsolation(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)

	if err := cm.Set("test", "quote", "AAPL", cachedPayload{Symbol: "AAPL"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got cachedPayload
	if cm.Get("test", "quote", "MSFT", &got) {
		t.Error("different params hit the same entry")
	}
	if cm.Get("test", "history", "AAPL", &got) {
		t.Error("different method hit the same entry")
	}
}

func TestCacheExpiry(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Nanosecond, true)

	if err := cm.Set("test", "quote", "AAPL", cachedPayload{Symbol: "AAPL"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var got cachedPayload
	if cm.Get("test", "quote", "AAPL", &got) {
		t.Error("expired entry served")
	}
}

func TestCacheDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, false)

	if err := cm.Set("test", "quote", "AAPL", cachedPayload{Symbol: "AAPL"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got cachedPayload
	if cm.Get("test", "quote", "AAPL", &got) {
		t.Error("disabled cache served an entry")
	}
}
