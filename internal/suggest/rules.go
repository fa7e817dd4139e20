package suggest

import (
	"fmt"
	"strconv"
)

// Rule is one row of the rule table. A rule fires when every field in Needs
// is known and When returns true. Rules with an empty Type are free-text
// advisories, which only surface in instant mode.
type Rule struct {
	Name     string
	Type     SuggestionType
	Priority Priority
	Needs    Field
	When     func(s MetricSummary) bool
	Message  func(s MetricSummary) string

	// Fallback rules fire only when no typed rule fired, and replace every
	// other advisory when they do.
	Fallback bool
}

// Advisory reports whether the rule has no dedicated suggestion type.
func (r Rule) Advisory() bool {
	return r.Type == ""
}

// screenOverWorkMargin is how far screen time must exceed work hours before
// the screen_over_work advisory fires.
const screenOverWorkMargin = 2.0

// beyond formats v with one decimal, adding digits until the rendered value
// sits on the same side of limit as v itself.
func beyond(v, limit float64) string {
	for prec := 1; prec <= 4; prec++ {
		text := strconv.FormatFloat(v, 'f', prec, 64)
		shown, _ := strconv.ParseFloat(text, 64)
		if (v > limit) == (shown > limit) && (v < limit) == (shown < limit) {
			return text
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DefaultMessage is shown by instant checks when nothing else applies.
const DefaultMessage = "Great balance today! Keep up the healthy routine."

// DefaultRules returns a fresh copy of the built-in rule table. Order matters
// for ties in ranking and for the unsorted instant message list.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "work_excessive",
			Type:     TypeWorkBreak,
			Priority: PriorityHigh,
			Needs:    FieldWork,
			When:     func(s MetricSummary) bool { return s.WorkHours > 10 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Work hours are over 10 hours (%sh). Excessive hours raise burnout risk, so step away for a real break.", beyond(s.WorkHours, 10))
			},
		},
		{
			Name:     "work_long",
			Type:     TypeWorkBreak,
			Priority: PriorityMedium,
			Needs:    FieldWork,
			When:     func(s MetricSummary) bool { return s.WorkHours > 8 && s.WorkHours <= 10 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Work hours are over 8 hours (%sh). Plan a longer break to recharge.", beyond(s.WorkHours, 8))
			},
		},
		{
			Name:     "screen_excessive",
			Type:     TypeScreenBreak,
			Priority: PriorityHigh,
			Needs:    FieldScreen,
			When:     func(s MetricSummary) bool { return s.ScreenTime > 10 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Screen time is over 10 hours (%sh). Schedule screen-free blocks and rest your eyes.", beyond(s.ScreenTime, 10))
			},
		},
		{
			// Screen fatigue saturates faster than work fatigue.
			Name:     "screen_long",
			Type:     TypeScreenBreak,
			Priority: PriorityHigh,
			Needs:    FieldScreen,
			When:     func(s MetricSummary) bool { return s.ScreenTime > 8 && s.ScreenTime <= 10 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Screen time is over 8 hours (%sh). Every 20 minutes, look at something 20 feet away for 20 seconds.", beyond(s.ScreenTime, 8))
			},
		},
		{
			Name:     "energy_depleted",
			Type:     TypeEnergyBoost,
			Priority: PriorityHigh,
			Needs:    FieldEnergy,
			When:     func(s MetricSummary) bool { return s.EmotionalEnergy < 3 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Emotional energy is very low (%.1f/10). Prioritize rest and reach out to someone you trust.", s.EmotionalEnergy)
			},
		},
		{
			Name:     "energy_low",
			Type:     TypeEnergyBoost,
			Priority: PriorityMedium,
			Needs:    FieldEnergy,
			When:     func(s MetricSummary) bool { return s.EmotionalEnergy >= 3 && s.EmotionalEnergy <= 5 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Emotional energy is below average (%.1f/10). A short walk or a favorite activity can help you recharge.", s.EmotionalEnergy)
			},
		},
		{
			Name:     "social_low",
			Type:     TypeSocialSuggestion,
			Priority: PriorityLow,
			Needs:    FieldSocial | FieldEnergy,
			When:     func(s MetricSummary) bool { return s.SocialTime < 1.5 && s.EmotionalEnergy >= 6 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Social time is under 1.5 hours (%sh) while your energy is good. Reach out to a friend or plan a shared activity.", beyond(s.SocialTime, 1.5))
			},
		},
		{
			Name:     "evening_downtime",
			Priority: PriorityLow,
			Needs:    FieldWork,
			When:     func(s MetricSummary) bool { return s.WorkHours > 8 },
			Message: func(MetricSummary) string {
				return "Set aside some downtime this evening to unwind."
			},
		},
		{
			Name:     "screen_creeping",
			Priority: PriorityLow,
			Needs:    FieldScreen,
			When:     func(s MetricSummary) bool { return s.ScreenTime >= 6 && s.ScreenTime < 8 },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Screen time is creeping up (%.1fh). Build in short breaks away from screens.", s.ScreenTime)
			},
		},
		{
			Name:     "screen_over_work",
			Priority: PriorityLow,
			Needs:    FieldWork | FieldScreen,
			When:     func(s MetricSummary) bool { return s.ScreenTime > s.WorkHours+screenOverWorkMargin },
			Message: func(s MetricSummary) string {
				return fmt.Sprintf("Screen time (%.1fh) well exceeds work hours (%.1fh). Swap some leisure screen time for offline activities.", s.ScreenTime, s.WorkHours)
			},
		},
		{
			Name:     "light_day",
			Priority: PriorityLow,
			Needs:    FieldWork | FieldScreen,
			When:     func(s MetricSummary) bool { return s.WorkHours < 4 && s.ScreenTime < 3 },
			Message: func(MetricSummary) string {
				return "Light day! A good chance to catch up on rest or a hobby."
			},
			Fallback: true,
		},
	}
}

// Evaluate runs every rule against s and returns the triggered candidates in
// rule-table order. Typed rules and ordinary advisories are evaluated
// independently. Fallback rules are skipped when a typed rule fired, and the
// first fallback that fires replaces all other advisories.
func Evaluate(rules []Rule, s MetricSummary) []Candidate {
	var out []Candidate
	var fallbacks []Rule
	typedFired := false

	for _, r := range rules {
		if r.Fallback {
			fallbacks = append(fallbacks, r)
			continue
		}
		if !fires(r, s) {
			continue
		}
		c := newCandidate(r, s)
		if !c.Advisory {
			typedFired = true
		}
		out = append(out, c)
	}

	if !typedFired {
		for _, r := range fallbacks {
			if fires(r, s) {
				return []Candidate{newCandidate(r, s)}
			}
		}
	}
	return out
}

func fires(r Rule, s MetricSummary) bool {
	return r.When != nil && s.Has(r.Needs) && r.When(s)
}

func newCandidate(r Rule, s MetricSummary) Candidate {
	msg := ""
	if r.Message != nil {
		msg = r.Message(s)
	}
	return Candidate{
		Suggestion: Suggestion{
			Type:     r.Type,
			Message:  msg,
			Priority: r.Priority,
		},
		Rule:     r.Name,
		Advisory: r.Advisory(),
	}
}
