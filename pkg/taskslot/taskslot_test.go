package taskslot

import (
	"sync"
	"testing"
)

func TestSlot_AcquireRelease(t *testing.T) {
	var s Slot

	token, ok := s.Acquire()
	if !ok || token == "" {
		t.Fatalf("first Acquire should succeed, got token=%q ok=%v", token, ok)
	}
	if !s.Held() {
		t.Error("slot should be held after Acquire")
	}

	if _, ok := s.Acquire(); ok {
		t.Error("second Acquire should fail while held")
	}

	if !s.Release(token) {
		t.Error("Release with current token should succeed")
	}
	if s.Held() {
		t.Error("slot should be free after Release")
	}
}

func TestSlot_StaleReleaseIsNoOp(t *testing.T) {
	var s Slot

	first, _ := s.Acquire()
	s.Release(first)

	second, ok := s.Acquire()
	if !ok {
		t.Fatal("re-Acquire after Release should succeed")
	}

	// releasing with the superseded token must not free the new holder
	if s.Release(first) {
		t.Error("stale token Release should be a no-op")
	}
	if !s.Held() {
		t.Error("slot should still be held after stale Release")
	}

	if !s.Release(second) {
		t.Error("Release with the current token should succeed")
	}
}

func TestSlot_ConcurrentAcquire(t *testing.T) {
	var s Slot
	var wg sync.WaitGroup
	acquired := make(chan string, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if token, ok := s.Acquire(); ok {
				acquired <- token
			}
		}()
	}
	wg.Wait()
	close(acquired)

	var tokens []string
	for tok := range acquired {
		tokens = append(tokens, tok)
	}
	if len(tokens) != 1 {
		t.Fatalf("exactly one goroutine should win the slot, got %d", len(tokens))
	}
}
