package client

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	c.set("profile:1", "alice")
	got, ok := c.get("profile:1")
	if !ok {
		t.Fatal("get() missed a freshly set entry")
	}
	if got != "alice" {
		t.Errorf("get() = %v, want alice", got)
	}
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	if _, ok := c.get("profile:404"); ok {
		t.Error("get() hit on an absent key")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := newProfileCache(time.Nanosecond, 10)

	c.set("profile:1", "alice")
	time.Sleep(time.Millisecond)

	if _, ok := c.get("profile:1"); ok {
		t.Error("get() returned an expired entry")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	c.set("profile:1", "alice")
	c.invalidate("profile:1")

	if _, ok := c.get("profile:1"); ok {
		t.Error("get() hit after invalidate")
	}

	// Invalidating an absent key must not panic or error.
	c.invalidate("profile:404")
}

func TestCache_InvalidateIsPerKey(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	c.set("profile:1", "alice")
	c.set("profile:2", "bob")
	c.invalidate("profile:1")

	if _, ok := c.get("profile:2"); !ok {
		t.Error("invalidate removed an unrelated entry")
	}
}

func TestCache_Clear(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	c.set("profile:1", "alice")
	c.set("profile:2", "bob")
	c.clear()

	if c.len() != 0 {
		t.Errorf("len() after clear = %d, want 0", c.len())
	}
}

func TestCache_EvictsWhenFull(t *testing.T) {
	c := newProfileCache(time.Minute, 3)

	for i := 0; i < 5; i++ {
		c.set(fmt.Sprintf("profile:%d", i), i)
	}

	if c.len() > 3 {
		t.Errorf("len() = %d, want at most 3", c.len())
	}
}

func TestCache_Stats(t *testing.T) {
	c := newProfileCache(time.Minute, 10)

	c.set("profile:1", "alice")
	c.get("profile:1")
	c.get("profile:2")

	stats := c.stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
}
