package middleware

import (
	"testing"
	"time"
)

func TestLimiterStoreEvictsIdleEntries(t *testing.T) {
	s := newLimiterStore(60, 10)

	s.get("10.0.0.1")
	s.get("10.0.0.2")
	if s.len() != 2 {
		t.Fatalf("len = %d, want 2", s.len())
	}

	// Both entries were just touched, a cutoff in the past keeps them.
	s.evictIdle(time.Now().Add(-time.Minute))
	if s.len() != 2 {
		t.Fatalf("len after no-op sweep = %d, want 2", s.len())
	}

	// A cutoff ahead of their lastSeen drops them.
	s.evictIdle(time.Now().Add(time.Second))
	if s.len() != 0 {
		t.Fatalf("len after sweep = %d, want 0", s.len())
	}
}

func TestLimiterStoreRefreshOnUse(t *testing.T) {
	s := newLimiterStore(60, 10)

	s.get("10.0.0.1")
	cutoff := time.Now()
	s.get("10.0.0.1")

	s.evictIdle(cutoff)
	if s.len() != 1 {
		t.Fatalf("recently used entry was evicted")
	}
}

func TestLimiterStoreAllowsWithinBurst(t *testing.T) {
	s := newLimiterStore(60, 2)

	l := s.get("10.0.0.1")
	if !l.Allow() || !l.Allow() {
		t.Fatalf("burst of 2 should allow two immediate requests")
	}
	if l.Allow() {
		t.Fatalf("third immediate request should be limited")
	}
}
