package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"o365-calendar/internal/model"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
	"o365-calendar/pkg/response"
)

// ListCalendars returns the cached calendars.
// @Summary     List calendars
// @Tags        Calendars
// @Produce     json
// @Success     200 {object} listCalendarsResp
// @Router      /api/v1/calendars [GET]
func (h *handler) ListCalendars(c *gin.Context) {
	var resp listCalendarsResp
	_ = h.store.With(func(s *model.Schedule) error {
		resp = newListCalendarsResp(s.Calendars)
		return nil
	})
	response.OK(c, resp)
}

// RefreshCalendars fetches the calendar list and reconciles the cache.
// @Summary     Refresh calendars
// @Description Fetches the calendar list and reconciles it into the cache. Cached events are kept.
// @Tags        Calendars
// @Produce     json
// @Success     200 {object} refreshResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     502 {object} response.Resp "Upstream failure"
// @Router      /api/v1/calendars/refresh [POST]
func (h *handler) RefreshCalendars(c *gin.Context) {
	ctx := c.Request.Context()

	var out schedule.RefreshOutput
	err := h.store.With(func(s *model.Schedule) error {
		var err error
		out, err = h.uc.RefreshCalendars(ctx, s)
		return err
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.RefreshCalendars: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newRefreshResp(out))
}

// ListEvents returns the cached events of one calendar.
// @Summary     List cached events
// @Tags        Events
// @Produce     json
// @Param       id path string true "Calendar ID"
// @Success     200 {object} listEventsResp
// @Failure     404 {object} response.Resp "Calendar not found"
// @Router      /api/v1/calendars/{id}/events [GET]
func (h *handler) ListEvents(c *gin.Context) {
	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var resp listEventsResp
	err = h.store.With(func(s *model.Schedule) error {
		cal, ok := s.Calendar(id)
		if !ok {
			return schedule.ErrCalendarNotFound
		}
		resp = newListEventsResp(cal.Events)
		return nil
	})
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, resp)
}

// RefreshEvents fetches one calendar's events inside the from/to window.
// @Summary     Refresh events
// @Description Fetches the events inside a window and reconciles them into the calendar.
// @Tags        Events
// @Produce     json
// @Param       id   path  string true  "Calendar ID"
// @Param       from query string false "Window start (date expression, default now)"
// @Param       to   query string false "Window end (date expression, default start + 365 days)"
// @Param       top  query int    false "Window size (default 10)"
// @Success     200 {object} refreshResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Calendar not found"
// @Failure     502 {object} response.Resp "Upstream failure"
// @Router      /api/v1/calendars/{id}/events/refresh [POST]
func (h *handler) RefreshEvents(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	window, err := h.processWindowReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var out schedule.RefreshOutput
	err = h.store.With(func(s *model.Schedule) error {
		cal, ok := s.Calendar(id)
		if !ok {
			return schedule.ErrCalendarNotFound
		}
		out, err = h.uc.RefreshEvents(ctx, cal, window)
		return err
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.RefreshEvents: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newRefreshResp(out))
}

// CreateEvent creates an event in one calendar and caches the result.
// @Summary     Create an event
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       id   path string   true "Calendar ID"
// @Param       body body eventReq true "Event fields"
// @Success     201 {object} eventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Calendar not found"
// @Failure     502 {object} response.Resp "Upstream failure"
// @Router      /api/v1/calendars/{id}/events [POST]
func (h *handler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	input, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var resp eventResp
	err = h.store.With(func(s *model.Schedule) error {
		cal, ok := s.Calendar(id)
		if !ok {
			return schedule.ErrCalendarNotFound
		}
		ev := cal.NewEvent()
		if err := h.uc.ApplyInput(ctx, ev, input); err != nil {
			return err
		}
		created, err := h.uc.CreateEvent(ctx, ev, "")
		if err != nil {
			return err
		}
		cal.Events = append(cal.Events, created)
		resp = newEventResp(created)
		return nil
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateEvent: %v", err)
		h.mapError(c, err)
		return
	}

	response.Created(c, resp)
}

// UpdateEvent applies the given fields to a copy of a cached event and
// sends it. The cached handle changes only once the service accepts it.
// @Summary     Update an event
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       id   path string   true "Event ID"
// @Param       body body eventReq true "Fields to change"
// @Success     200 {object} eventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Event not found"
// @Failure     409 {object} response.Resp "Event deleted"
// @Failure     502 {object} response.Resp "Upstream failure"
// @Router      /api/v1/events/{id} [PATCH]
func (h *handler) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	input, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var resp eventResp
	err = h.store.With(func(s *model.Schedule) error {
		ev, ok := s.Event(id)
		if !ok {
			return schedule.ErrEventNotFound
		}
		// Edits go to a copy so a rejected update leaves the cache as it was.
		draft := ev.Clone()
		if err := h.uc.ApplyInput(ctx, draft, input); err != nil {
			return err
		}
		updated, err := h.uc.UpdateEvent(ctx, draft)
		if err != nil {
			return err
		}
		replaceCached(s, ev, updated)
		resp = newEventResp(updated)
		return nil
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateEvent: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteEvent deletes a cached event on the service. The cached handle is
// kept, marked deleted.
// @Summary     Delete an event
// @Tags        Events
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} deleteResp
// @Failure     404 {object} response.Resp "Event not found"
// @Failure     409 {object} response.Resp "Event deleted"
// @Failure     502 {object} response.Resp "Upstream failure"
// @Router      /api/v1/events/{id} [DELETE]
func (h *handler) DeleteEvent(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var resp *outlook.Response
	err = h.store.With(func(s *model.Schedule) error {
		ev, ok := s.Event(id)
		if !ok {
			return schedule.ErrEventNotFound
		}
		resp, err = h.uc.DeleteEvent(ctx, ev)
		return err
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.DeleteEvent: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newDeleteResp(id, resp))
}

// ExportEvents renders one calendar's cached events as iCalendar.
// @Summary     Export events as iCalendar
// @Tags        Events
// @Produce     text/calendar
// @Param       id path string true "Calendar ID"
// @Success     200 {string} string "VCALENDAR"
// @Failure     404 {object} response.Resp "Calendar not found"
// @Router      /api/v1/calendars/{id}/events.ics [GET]
func (h *handler) ExportEvents(c *gin.Context) {
	id, err := processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var body string
	err = h.store.With(func(s *model.Schedule) error {
		cal, ok := s.Calendar(id)
		if !ok {
			return schedule.ErrCalendarNotFound
		}
		body = newICS(cal, h.now())
		return nil
	})
	if err != nil {
		h.mapError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// replaceCached swaps old for updated in its calendar's event list.
func replaceCached(s *model.Schedule, old, updated *model.Event) {
	cal, ok := s.Calendar(updated.CalendarID())
	if !ok {
		return
	}
	for i, e := range cal.Events {
		if e == old {
			cal.Events[i] = updated
			return
		}
	}
}
