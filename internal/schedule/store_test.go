package schedule

import (
	"errors"
	"sync"
	"testing"

	"o365-calendar/internal/model"
	"o365-calendar/pkg/outlook"
)

func TestStoreSerializes(t *testing.T) {
	st := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(func(s *model.Schedule) error {
				cal, _ := model.NewCalendar(outlook.Payload{"id": "C", "name": "n"})
				s.Calendars = append(s.Calendars, cal)
				return nil
			})
		}()
	}
	wg.Wait()

	_ = st.With(func(s *model.Schedule) error {
		if len(s.Calendars) != 50 {
			t.Errorf("expected 50 calendars, got %d", len(s.Calendars))
		}
		return nil
	})

	sentinel := errors.New("stop")
	if err := st.With(func(*model.Schedule) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("expected callback error, got %v", err)
	}
}
