package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"

	"github.com/blackwell-systems/daypattern/internal/store"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// Version is reported in serverInfo. The CLI overrides it with its build version.
var Version = "dev"

// MetricStore is the persistence the tools need.
type MetricStore interface {
	RecentMetrics(ctx context.Context, days int, now time.Time) ([]store.Record, error)
	UpsertMetric(ctx context.Context, m suggest.DailyMetric) error
}

// SuggestionsResult is the get_suggestions response.
type SuggestionsResult struct {
	Days        int                  `json:"days"`
	Samples     int                  `json:"samples"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// LogDayResult is the log_day response.
type LogDayResult struct {
	Logged string `json:"logged"`
}

var (
	getSuggestionsSchema = json.RawMessage(`{"type":"object","properties":{"days":{"type":"integer","description":"Number of recent days to summarize (default from config)"}},"additionalProperties":false}`)
	checkDaySchema       = json.RawMessage(`{"type":"object","properties":{"work_hours":{"type":"number"},"screen_time":{"type":"number"},"sleep_hours":{"type":"number"},"social_time":{"type":"number"},"emotional_energy":{"type":"number","description":"Energy rating 1-10"}},"required":["work_hours","screen_time"],"additionalProperties":false}`)
	logDaySchema         = json.RawMessage(`{"type":"object","properties":{"date":{"type":"string","description":"YYYY-MM-DD (default today)"},"sleep_hours":{"type":"number"},"work_hours":{"type":"number"},"social_time":{"type":"number"},"screen_time":{"type":"number"},"emotional_energy":{"type":"integer"}},"required":["sleep_hours","work_hours","social_time","screen_time","emotional_energy"],"additionalProperties":false}`)
)

// addTools registers the MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_suggestions",
		Description: "Ranked wellness suggestions for the average of the last N logged days.",
		InputSchema: getSuggestionsSchema,
		Handler:     s.handleGetSuggestions,
	})
	s.registerTool(toolDef{
		Name:        "check_day",
		Description: "Instant check of today's work hours and screen time, with optional sleep, social time and energy.",
		InputSchema: checkDaySchema,
		Handler:     s.handleCheckDay,
	})
	s.registerTool(toolDef{
		Name:        "log_day",
		Description: "Record one day's sleep, work, social time, screen time and energy rating.",
		InputSchema: logDaySchema,
		Handler:     s.handleLogDay,
	})
}

// toolArgs is a decoded arguments object. Clients send numbers as JSON
// numbers or strings, so values are coerced with cast.
type toolArgs map[string]any

func decodeArgs(raw json.RawMessage) (toolArgs, error) {
	args := toolArgs{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

func (a toolArgs) float(key string) (float64, bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", key, err)
	}
	return f, true, nil
}

func (a toolArgs) requireFloat(key string) (float64, error) {
	f, ok, err := a.float(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	return f, nil
}

// wholeNumber converts f to an int, refusing to truncate a fractional value.
func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// handleGetSuggestions summarizes the recent window and returns ranked suggestions.
func (s *Server) handleGetSuggestions(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}

	days := s.windowDays
	if f, ok, err := args.float("days"); err != nil {
		return nil, err
	} else if ok {
		if days, ok = wholeNumber(f); !ok {
			return nil, fmt.Errorf("days must be a whole number, got %g", f)
		}
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}

	records, err := s.store.RecentMetrics(ctx, days, s.now())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no metrics logged in the last %d days", days)
	}

	suggestions, err := s.engine.Suggest(store.Metrics(records))
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	return SuggestionsResult{Days: days, Samples: len(records), Suggestions: suggestions}, nil
}

// handleCheckDay runs the instant check.
func (s *Server) handleCheckDay(_ context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}

	work, err := args.requireFloat("work_hours")
	if err != nil {
		return nil, err
	}
	screen, err := args.requireFloat("screen_time")
	if err != nil {
		return nil, err
	}

	var opts []suggest.InstantOption
	optional := []struct {
		key string
		opt func(float64) suggest.InstantOption
	}{
		{"sleep_hours", suggest.WithSleep},
		{"social_time", suggest.WithSocial},
		{"emotional_energy", suggest.WithEnergy},
	}
	for _, o := range optional {
		v, ok, err := args.float(o.key)
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, o.opt(v))
		}
	}

	return s.engine.Check(work, screen, opts...)
}

// handleLogDay stores one day of metrics.
func (s *Server) handleLogDay(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}

	day := s.now()
	if v, ok := args["date"]; ok && v != nil {
		day, err = time.Parse(suggest.DateLayout, cast.ToString(v))
		if err != nil {
			return nil, fmt.Errorf("date: expected YYYY-MM-DD: %w", err)
		}
	}

	m := suggest.DailyMetric{Date: day}
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"sleep_hours", &m.SleepHours},
		{"work_hours", &m.WorkHours},
		{"social_time", &m.SocialTime},
		{"screen_time", &m.ScreenTime},
	} {
		if *f.dst, err = args.requireFloat(f.key); err != nil {
			return nil, err
		}
	}

	energy, err := args.requireFloat("emotional_energy")
	if err != nil {
		return nil, err
	}
	var whole bool
	if m.EmotionalEnergy, whole = wholeNumber(energy); !whole {
		return nil, &suggest.InvalidInputError{
			Field:  suggest.FieldEnergy.Label(),
			Value:  energy,
			Reason: fmt.Sprintf("must be a whole number, got %g", energy),
		}
	}

	if err := s.store.UpsertMetric(ctx, m); err != nil {
		return nil, err
	}
	return LogDayResult{Logged: m.Day()}, nil
}
