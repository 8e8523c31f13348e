package schedule

import (
	"sync"

	"o365-calendar/internal/model"
)

// Store owns a Schedule and serializes every caller that touches it.
type Store struct {
	mu    sync.Mutex
	sched *model.Schedule
}

func NewStore(s *model.Schedule) *Store {
	if s == nil {
		s = model.NewSchedule()
	}
	return &Store{sched: s}
}

// With runs fn while holding the store lock.
func (st *Store) With(fn func(*model.Schedule) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.sched)
}
