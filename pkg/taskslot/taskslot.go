// Package taskslot provides a single-slot task handle: at most one
// invocation of a guarded action may be in flight at a time. Each
// acquisition hands out a token; release with a stale token is a no-op,
// so a caller that navigated away cannot free a newer invocation's slot.
package taskslot

import (
	"sync"

	"github.com/google/uuid"
)

// Slot guards one action against concurrent double-invocation.
// The zero value is ready to use.
type Slot struct {
	mu    sync.Mutex
	token string
}

// Acquire claims the slot. It returns a release token and true, or
// ("", false) if the slot is already held.
func (s *Slot) Acquire() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return "", false
	}
	s.token = uuid.New().String()
	return s.token, true
}

// Release frees the slot if token matches the current holder.
// Stale tokens are ignored and false is returned.
func (s *Slot) Release(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || token != s.token {
		return false
	}
	s.token = ""
	return true
}

// Held reports whether the slot is currently held.
func (s *Slot) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}
