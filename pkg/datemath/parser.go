package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationPattern = regexp.MustCompile(`^in (\d+) (hour|hours|day|days|week|weeks|month|months|year|years)$`)

// absoluteLayouts are tried in order after the relative forms.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parser converts date expressions to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/London"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Parse converts a date expression to an absolute time.Time. Relative forms
// ("now", "today", "in 3 days", "next monday") are resolved against
// baseTime; absolute forms without an offset are read in the parser's zone.
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "now":
		return baseTime.In(p.location), nil
	case "today":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if strings.HasPrefix(expr, "in ") {
		return p.parseInDuration(expr, baseTime)
	}
	if strings.HasPrefix(expr, "next ") {
		return p.parseNextWeekday(expr, baseTime)
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, strings.ToUpper(expr), p.location); err == nil {
			return t, nil
		}
	}
	return baseTime, fmt.Errorf("%w: %q", ErrUnrecognized, expr)
}

// ParseRange resolves a window. An empty from means baseTime; an empty to
// means span after the start.
func (p *Parser) ParseRange(from, to string, baseTime time.Time, span time.Duration) (Range, error) {
	start := baseTime.In(p.location)
	if strings.TrimSpace(from) != "" {
		t, err := p.Parse(from, baseTime)
		if err != nil {
			return Range{}, fmt.Errorf("start: %w", err)
		}
		start = t
	}

	end := start.Add(span)
	if strings.TrimSpace(to) != "" {
		t, err := p.Parse(to, baseTime)
		if err != nil {
			return Range{}, fmt.Errorf("end: %w", err)
		}
		end = t
	}

	if !end.After(start) {
		return Range{}, ErrEmptyRange
	}
	return Range{Start: start, End: end}, nil
}

// parseInDuration handles patterns like "in 3 hours", "in 2 weeks", "in 1 month".
// Hours count from baseTime; larger units land on the start of the day.
func (p *Parser) parseInDuration(expr string, baseTime time.Time) (time.Time, error) {
	matches := durationPattern.FindStringSubmatch(expr)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", expr)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "hour"):
		return baseTime.In(p.location).Add(time.Duration(amount) * time.Hour), nil
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	case strings.HasPrefix(unit, "year"):
		return p.startOfDay(baseTime.AddDate(amount, 0, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(expr string, baseTime time.Time) (time.Time, error) {
	dayName := strings.TrimPrefix(expr, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.In(p.location).Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
