package watcher

import (
	"sync"
	"time"
)

// SelfWriteSignal is shared by the stores that write the watched files and
// the watcher that observes them. While any write is marked, observed events
// are treated as self-originated.
//
// The mark is released after a fixed delay, not on write acknowledgment: a
// write that takes longer than the delay will be picked up as external.
type SelfWriteSignal struct {
	mu      sync.Mutex
	pending int
}

func NewSelfWriteSignal() *SelfWriteSignal {
	return &SelfWriteSignal{}
}

func (s *SelfWriteSignal) Mark() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
}

func (s *SelfWriteSignal) ReleaseAfter(d time.Duration) {
	if d <= 0 {
		s.release()
		return
	}
	time.AfterFunc(d, s.release)
}

func (s *SelfWriteSignal) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

func (s *SelfWriteSignal) release() {
	s.mu.Lock()
	if s.pending > 0 {
		s.pending--
	}
	s.mu.Unlock()
}
