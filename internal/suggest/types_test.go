package suggest

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDailyMetric_JSONDate(t *testing.T) {
	m := day(7, 7.5, 9, 1, 6, 6)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"date":"2026-10-08","sleep_hours":7.5,"work_hours":9,"social_time":1,"screen_time":6,"emotional_energy":6}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var back DailyMetric
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(m.Date) {
		t.Errorf("date = %v, want %v", back.Date, m.Date)
	}
	back.Date = m.Date
	if back != m {
		t.Errorf("decoded %+v, want %+v", back, m)
	}
}

func TestDailyMetric_JSONRejectsTimestamp(t *testing.T) {
	var m DailyMetric
	err := json.Unmarshal([]byte(`{"date":"2026-10-08T00:00:00Z","sleep_hours":7}`), &m)
	if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("expected a date format error, got %v", err)
	}
}
