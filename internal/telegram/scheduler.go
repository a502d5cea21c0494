package telegram

import (
	"sync"
	"time"
)

// scheduler runs one deferred task per chat. Scheduling again for the
// same chat cancels the pending task, so a restarted quiz can never be
// clobbered by a stale timer.
type scheduler struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[int64]*time.Timer)}
}

func (s *scheduler) Schedule(chatID int64, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
	}
	s.timers[chatID] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, chatID)
		s.mu.Unlock()
		fn()
	})
}

func (s *scheduler) Cancel(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
		delete(s.timers, chatID)
	}
}

func (s *scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
