// Package suggest provides the wellness recommendation engine and rule types.
package suggest

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for DailyMetric dates.
const DateLayout = "2006-01-02"

// Priority ranks a suggestion. Lower values are more urgent.
type Priority int

// Priority levels for suggestions.
const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// String returns the lowercase label of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Outranks reports whether p is strictly more urgent than other.
func (p Priority) Outranks(other Priority) bool {
	return p < other
}

// MarshalJSON renders the priority as its label.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts the label form produced by MarshalJSON.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParsePriority(label)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority converts a label ("high", "medium", "low") to a Priority.
func ParsePriority(label string) (Priority, error) {
	switch label {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", label)
	}
}

// SuggestionType is the closed set of typed suggestion categories. The zero
// value marks a free-text advisory with no dedicated type.
type SuggestionType string

const (
	TypeWorkBreak        SuggestionType = "work_break"
	TypeScreenBreak      SuggestionType = "screen_break"
	TypeEnergyBoost      SuggestionType = "energy_boost"
	TypeSocialSuggestion SuggestionType = "social_suggestion"
)

// AllSuggestionTypes lists every typed category in declaration order.
var AllSuggestionTypes = []SuggestionType{
	TypeWorkBreak,
	TypeScreenBreak,
	TypeEnergyBoost,
	TypeSocialSuggestion,
}

// IsValid reports whether t is one of the typed categories.
func (t SuggestionType) IsValid() bool {
	for _, known := range AllSuggestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Suggestion is a single actionable recommendation.
type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Message  string         `json:"message"`
	Priority Priority       `json:"priority"`
}

// Candidate is a raw rule result before deduplication and ranking.
type Candidate struct {
	Suggestion
	Rule     string
	Advisory bool
}

// DailyMetric holds one day's observations.
type DailyMetric struct {
	Date            time.Time `json:"date"`
	SleepHours      float64   `json:"sleep_hours"`
	WorkHours       float64   `json:"work_hours"`
	SocialTime      float64   `json:"social_time"`
	ScreenTime      float64   `json:"screen_time"`
	EmotionalEnergy int       `json:"emotional_energy"`
}

// Day returns the metric date formatted as YYYY-MM-DD.
func (m DailyMetric) Day() string {
	return m.Date.Format(DateLayout)
}

type dailyMetricJSON struct {
	Date            string  `json:"date"`
	SleepHours      float64 `json:"sleep_hours"`
	WorkHours       float64 `json:"work_hours"`
	SocialTime      float64 `json:"social_time"`
	ScreenTime      float64 `json:"screen_time"`
	EmotionalEnergy int     `json:"emotional_energy"`
}

// MarshalJSON renders the date as YYYY-MM-DD.
func (m DailyMetric) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyMetricJSON{
		Date:            m.Day(),
		SleepHours:      m.SleepHours,
		WorkHours:       m.WorkHours,
		SocialTime:      m.SocialTime,
		ScreenTime:      m.ScreenTime,
		EmotionalEnergy: m.EmotionalEnergy,
	})
}

// UnmarshalJSON accepts the YYYY-MM-DD form produced by MarshalJSON.
func (m *DailyMetric) UnmarshalJSON(data []byte) error {
	var raw dailyMetricJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("date %q: expected YYYY-MM-DD", raw.Date)
	}
	*m = DailyMetric{
		Date:            day,
		SleepHours:      raw.SleepHours,
		WorkHours:       raw.WorkHours,
		SocialTime:      raw.SocialTime,
		ScreenTime:      raw.ScreenTime,
		EmotionalEnergy: raw.EmotionalEnergy,
	}
	return nil
}

// Field identifies one numeric input of a MetricSummary.
type Field uint8

const (
	FieldSleep Field = 1 << iota
	FieldWork
	FieldSocial
	FieldScreen
	FieldEnergy

	allFields = FieldSleep | FieldWork | FieldSocial | FieldScreen | FieldEnergy
)

// Label returns the human-readable name of the field, as used in
// validation messages.
func (f Field) Label() string {
	switch f {
	case FieldSleep:
		return "sleep hours"
	case FieldWork:
		return "work hours"
	case FieldSocial:
		return "social time"
	case FieldScreen:
		return "screen time"
	case FieldEnergy:
		return "emotional energy"
	default:
		return "metric"
	}
}

// MetricSummary is the mean of one or more daily metrics, or the raw scalars
// of an instant check. Only fields recorded in Known carry data.
type MetricSummary struct {
	SleepHours      float64 `json:"sleep_hours"`
	WorkHours       float64 `json:"work_hours"`
	SocialTime      float64 `json:"social_time"`
	ScreenTime      float64 `json:"screen_time"`
	EmotionalEnergy float64 `json:"emotional_energy"`
	Samples         int     `json:"samples"`
	Known           Field   `json:"-"`
}

// Has reports whether every field in f is known.
func (s MetricSummary) Has(f Field) bool {
	return s.Known&f == f
}
