package datemath_test

import (
	"errors"
	"testing"
	"time"

	"o365-calendar/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/London")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "Today",
			relative: "today",
			want:     startOfBase,
		},
		{
			name:     "Tomorrow",
			relative: "tomorrow",
			want:     startOfBase.AddDate(0, 0, 1),
		},
		{
			name:     "Yesterday",
			relative: "yesterday",
			want:     startOfBase.AddDate(0, 0, -1),
		},
		{
			name:     "In 3 days",
			relative: "in 3 days",
			want:     startOfBase.AddDate(0, 0, 3),
		},
		{
			name:     "In 2 weeks",
			relative: "in 2 weeks",
			want:     startOfBase.AddDate(0, 0, 14),
		},
		{
			name:     "In 1 month",
			relative: "in 1 month",
			want:     startOfBase.AddDate(0, 1, 0),
		},
		{
			name:     "Invalid duration pattern",
			relative: "in a few days",
			want:     baseTime,
			wantErr:  true,
		},
		{
			name:     "Next Monday (from Wed)",
			relative: "next monday",
			want:     startOfBase.AddDate(0, 0, 5), // Wed(3) to Mon(1) is +5 days
		},
		{
			name:     "Next Wednesday (from Wed)",
			relative: "next wednesday",
			want:     startOfBase.AddDate(0, 0, 7), // 1 week later
		},
		{
			name:     "Unknown expression",
			relative: "some random day",
			want:     baseTime,
			wantErr:  true,
		},
		{
			name:     "Now",
			relative: "now",
			want:     baseTime,
		},
		{
			name:     "In 3 hours",
			relative: "in 3 hours",
			want:     baseTime.Add(3 * time.Hour),
		},
		{
			name:     "In 1 year",
			relative: "in 1 year",
			want:     startOfBase.AddDate(1, 0, 0),
		},
		{
			name:     "RFC3339",
			relative: "2024-06-01T08:00:00+02:00",
			want:     time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name:     "Canonical without zone",
			relative: "2024-06-01T08:00:00",
			want:     time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "Date only",
			relative: "2024-06-01",
			want:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Invalid Next Weekday",
			relative: "next funday",
			want:     baseTime, // Error returns baseTime
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}

func TestParseRange(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	span := 365 * 24 * time.Hour

	tests := []struct {
		name      string
		from, to  string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   error
	}{
		{"defaults", "", "", base, base.Add(span), nil},
		{"relative start", "tomorrow", "", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Add(span), nil},
		{"both", "today", "in 1 week", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), nil},
		{"inverted", "tomorrow", "yesterday", time.Time{}, time.Time{}, datemath.ErrEmptyRange},
		{"bad start", "soon", "", time.Time{}, time.Time{}, datemath.ErrUnrecognized},
		{"bad end", "", "later", time.Time{}, time.Time{}, datemath.ErrUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseRange(tt.from, tt.to, base, span)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseRange() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("ParseRange() got = %+v, want %v..%v", got, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
