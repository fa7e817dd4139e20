package watcher

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// levelFor maps a suggestion priority to an alert level. Low priority
// suggestions are not alerted.
func levelFor(p suggest.Priority) string {
	switch p {
	case suggest.PriorityHigh:
		return "critical"
	case suggest.PriorityMedium:
		return "warning"
	default:
		return ""
	}
}

// suggestionKey identifies a suggestion across polls by type and priority.
func suggestionKey(s suggest.Suggestion) string {
	return string(s.Type) + ":" + s.Priority.String()
}

// Compare detects notable changes between two watch states and returns
// alerts. prev may be nil on the first poll.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert
	alerts = append(alerts, compareSuggestions(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)
	return alerts
}

// compareSuggestions alerts on high and medium suggestions not present in
// the previous state.
func compareSuggestions(prev, curr *WatchState) []Alert {
	seen := make(map[string]bool)
	if prev != nil {
		for _, s := range prev.Suggestions {
			seen[suggestionKey(s)] = true
		}
	}

	var alerts []Alert
	for _, s := range curr.Suggestions {
		level := levelFor(s.Priority)
		if level == "" || seen[suggestionKey(s)] {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   level,
			Title:   titleFor(s.Type),
			Message: s.Message,
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareInfo reports resolved suggestions and a missing log for today.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert

	if prev != nil {
		active := make(map[suggest.SuggestionType]bool)
		for _, s := range curr.Suggestions {
			active[s.Type] = true
		}
		resolved := make(map[suggest.SuggestionType]bool)
		for _, s := range prev.Suggestions {
			if levelFor(s.Priority) == "" || active[s.Type] || resolved[s.Type] {
				continue
			}
			resolved[s.Type] = true
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   titleFor(s.Type) + " resolved",
				Message: fmt.Sprintf("No %s suggestion for the last %s.", humanType(s.Type), window(curr.Samples)),
				Time:    curr.Timestamp,
			})
		}
	}

	today := curr.Timestamp.Format(suggest.DateLayout)
	if curr.LatestDay != today {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Nothing logged today",
			Message: "Run `daypattern log` to record today's metrics.",
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

func titleFor(t suggest.SuggestionType) string {
	switch t {
	case suggest.TypeWorkBreak:
		return "Time for a break"
	case suggest.TypeScreenBreak:
		return "Screen break"
	case suggest.TypeEnergyBoost:
		return "Energy is low"
	case suggest.TypeSocialSuggestion:
		return "Reach out"
	default:
		return "Suggestion"
	}
}

func humanType(t suggest.SuggestionType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func window(samples int) string {
	if samples == 1 {
		return "logged day"
	}
	return fmt.Sprintf("%d logged days", samples)
}
