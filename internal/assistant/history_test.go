package assistant

import (
	"fmt"
	"testing"
)

func TestHistory_KeepsLastExchangesOnly(t *testing.T) {
	h := NewHistory()

	for i := 0; i < maxExchanges+3; i++ {
		h.Append(1, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	got := h.Recent(1)
	if len(got) != maxExchanges {
		t.Fatalf("len = %d, want %d", len(got), maxExchanges)
	}
	if got[0].User != "q3" {
		t.Fatalf("oldest kept = %q, want q3", got[0].User)
	}
	if got[len(got)-1].Assistant != fmt.Sprintf("a%d", maxExchanges+2) {
		t.Fatalf("newest = %q", got[len(got)-1].Assistant)
	}
}

func TestHistory_IsolatesUsers(t *testing.T) {
	h := NewHistory()
	h.Append(1, "hi", "hello")
	h.Append(2, "مرحبا", "أهلاً")

	if len(h.Recent(1)) != 1 || len(h.Recent(2)) != 1 {
		t.Fatal("histories bled between users")
	}
	if h.Recent(1)[0].User != "hi" {
		t.Fatalf("user 1 history = %+v", h.Recent(1))
	}
}

func TestHistory_RecentReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.Append(1, "q", "a")

	got := h.Recent(1)
	got[0].User = "mutated"

	if h.Recent(1)[0].User != "q" {
		t.Fatal("Recent exposed internal slice")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Append(1, "q", "a")
	h.Clear(1)

	if len(h.Recent(1)) != 0 {
		t.Fatal("history not cleared")
	}
}
