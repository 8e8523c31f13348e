package normalize

import (
	"time"

	"o365-calendar/pkg/outlook"
)

// TimeInput is the closed set of accepted time representations.
type TimeInput interface {
	isTimeInput()
}

// Epoch is seconds since the Unix epoch, interpreted as UTC.
type Epoch float64

// CalendarTime is a broken-down wall-clock value.
type CalendarTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Preformatted is passed through unchanged; the caller owns its correctness.
type Preformatted struct {
	Value any
}

func (Epoch) isTimeInput()        {}
func (CalendarTime) isTimeInput() {}
func (Preformatted) isTimeInput() {}

// At breaks t down into its wall-clock fields.
func At(t time.Time) CalendarTime {
	return CalendarTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (c CalendarTime) format() string {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC).Format(outlook.TimeFormat)
}

func (e Epoch) format() string {
	sec := int64(e)
	nsec := int64((float64(e) - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format(outlook.TimeFormat)
}

// Time converts in to its wire value: a {dateTime, timeZone} structure for
// Epoch and CalendarTime, or the preformatted value verbatim.
func Time(in TimeInput, timeZone string) (any, error) {
	switch v := in.(type) {
	case Epoch:
		return DateTimeTimeZone(v.format(), timeZone), nil
	case CalendarTime:
		return DateTimeTimeZone(v.format(), timeZone), nil
	case Preformatted:
		return v.Value, nil
	default:
		return nil, ErrUnsupportedTime
	}
}

// DateTimeTimeZone builds the canonical time structure.
func DateTimeTimeZone(dateTime, timeZone string) map[string]any {
	return map[string]any{
		"dateTime": dateTime,
		"timeZone": timeZone,
	}
}

// LocalZone returns the process's current timezone abbreviation.
func LocalZone() string {
	name, _ := time.Now().Zone()
	return name
}
