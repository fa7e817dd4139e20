// Package store provides SQLite persistence for daily metric records.
package store

import (
	"encoding/json"
	"time"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// Record is a stored day: the metric plus the time it was last written.
type Record struct {
	suggest.DailyMetric
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON writes the metric fields plus updated_at. The promoted
// DailyMetric marshaler would drop UpdatedAt.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date            string    `json:"date"`
		SleepHours      float64   `json:"sleep_hours"`
		WorkHours       float64   `json:"work_hours"`
		SocialTime      float64   `json:"social_time"`
		ScreenTime      float64   `json:"screen_time"`
		EmotionalEnergy int       `json:"emotional_energy"`
		UpdatedAt       time.Time `json:"updated_at"`
	}{
		Date:            r.Day(),
		SleepHours:      r.SleepHours,
		WorkHours:       r.WorkHours,
		SocialTime:      r.SocialTime,
		ScreenTime:      r.ScreenTime,
		EmotionalEnergy: r.EmotionalEnergy,
		UpdatedAt:       r.UpdatedAt,
	})
}

// Metrics strips bookkeeping and returns the plain metrics in order.
func Metrics(records []Record) []suggest.DailyMetric {
	out := make([]suggest.DailyMetric, len(records))
	for i, r := range records {
		out[i] = r.DailyMetric
	}
	return out
}

// truncateDay drops the clock part of t, keeping its calendar date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
