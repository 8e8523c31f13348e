package http

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"o365-calendar/internal/model"
)

const icsProductID = "-//o365-calendar//calendar export//EN"

// newICS renders the persisted, non-deleted cached events of cal. Events
// without a readable start are left out.
func newICS(cal *model.Calendar, now time.Time) string {
	out := ical.NewCalendar()
	out.SetMethod(ical.MethodPublish)
	out.SetProductId(icsProductID)
	out.SetXWRCalName(cal.Name())

	for _, e := range cal.Events {
		if e.ID() == "" || e.Deleted() {
			continue
		}
		start, err := e.Start()
		if err != nil {
			continue
		}
		end, err := e.End()
		if err != nil {
			end = start
		}

		ve := out.AddEvent(e.ID())
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(e.Subject())
		if body := e.Body(); body != "" {
			ve.SetDescription(body)
		}
		if loc := e.Location(); loc != "" {
			ve.SetLocation(loc)
		}
		for _, a := range e.Attendees() {
			if a.Address == "" {
				continue
			}
			ve.AddAttendee(a.Address, ical.WithCN(a.Name))
		}
		if cats := e.Categories(); len(cats) > 0 {
			ve.AddProperty(ical.ComponentPropertyCategories, strings.Join(cats, ","))
		}
	}
	return out.Serialize()
}
