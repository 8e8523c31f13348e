package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"o365-calendar/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if string(b) != `"2024-05-01T15:30:00+02:00"` {
		t.Errorf("unexpected DateTime JSON: %s", b)
	}

	b, _ = json.Marshal(response.DateTime(time.Time{}))
	if string(b) != "null" {
		t.Errorf("expected null for zero DateTime, got %s", b)
	}
}
