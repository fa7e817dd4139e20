package suggest

import (
	"strings"
	"testing"
)

func fullSummary(sleep, work, social, screen, energy float64) MetricSummary {
	return MetricSummary{
		SleepHours:      sleep,
		WorkHours:       work,
		SocialTime:      social,
		ScreenTime:      screen,
		EmotionalEnergy: energy,
		Samples:         1,
		Known:           allFields,
	}
}

func healthySummary() MetricSummary {
	return fullSummary(8, 5, 3, 4, 7)
}

func firedRules(cands []Candidate) []string {
	names := make([]string, 0, len(cands))
	for _, c := range cands {
		names = append(names, c.Rule)
	}
	return names
}

func findType(cands []Candidate, t SuggestionType) (Candidate, bool) {
	for _, c := range cands {
		if c.Type == t {
			return c, true
		}
	}
	return Candidate{}, false
}

// --- Work hours ---

func TestEvaluate_WorkHoursBrackets(t *testing.T) {
	tests := []struct {
		name     string
		work     float64
		wantRule string
		wantPrio Priority
	}{
		{"exactly 8 is healthy", 8.0, "", 0},
		{"just over 8 is medium", 8.0001, "work_long", PriorityMedium},
		{"9 is medium", 9, "work_long", PriorityMedium},
		{"exactly 10 is medium", 10, "work_long", PriorityMedium},
		{"just over 10 is high", 10.0001, "work_excessive", PriorityHigh},
		{"12 is high", 12, "work_excessive", PriorityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := healthySummary()
			s.WorkHours = tc.work
			cands := Evaluate(DefaultRules(), s)
			c, ok := findType(cands, TypeWorkBreak)
			if tc.wantRule == "" {
				if ok {
					t.Fatalf("expected no work_break, got rule %q", c.Rule)
				}
				return
			}
			if !ok {
				t.Fatalf("expected work_break from %q, fired: %v", tc.wantRule, firedRules(cands))
			}
			if c.Rule != tc.wantRule {
				t.Errorf("expected rule %q, got %q", tc.wantRule, c.Rule)
			}
			if c.Priority != tc.wantPrio {
				t.Errorf("expected priority %s, got %s", tc.wantPrio, c.Priority)
			}
		})
	}
}

// --- Screen time ---

func TestEvaluate_ScreenTimeBrackets(t *testing.T) {
	tests := []struct {
		name     string
		screen   float64
		wantRule string
	}{
		{"8 is not a break", 8, ""},
		{"9 is high", 9, "screen_long"},
		{"10 is high via the 8-10 bracket", 10, "screen_long"},
		{"11 is excessive", 11, "screen_excessive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := healthySummary()
			s.ScreenTime = tc.screen
			c, ok := findType(Evaluate(DefaultRules(), s), TypeScreenBreak)
			if tc.wantRule == "" {
				if ok {
					t.Fatalf("expected no screen_break, got %q", c.Rule)
				}
				return
			}
			if !ok {
				t.Fatalf("expected screen_break from %q", tc.wantRule)
			}
			if c.Rule != tc.wantRule {
				t.Errorf("expected rule %q, got %q", tc.wantRule, c.Rule)
			}
			if c.Priority != PriorityHigh {
				t.Errorf("expected high priority, got %s", c.Priority)
			}
		})
	}
}

func TestEvaluate_ScreenCreepingIsAdvisory(t *testing.T) {
	s := healthySummary()
	s.ScreenTime = 6
	cands := Evaluate(DefaultRules(), s)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %v", firedRules(cands))
	}
	if !cands[0].Advisory || cands[0].Type != "" {
		t.Errorf("expected untyped advisory, got %+v", cands[0])
	}
	if cands[0].Rule != "screen_creeping" {
		t.Errorf("expected screen_creeping, got %q", cands[0].Rule)
	}

	s.ScreenTime = 8
	for _, c := range Evaluate(DefaultRules(), s) {
		if c.Rule == "screen_creeping" {
			t.Error("screen_creeping should not fire at exactly 8")
		}
	}
}

// --- Emotional energy ---

func TestEvaluate_EnergyBrackets(t *testing.T) {
	tests := []struct {
		energy   float64
		wantPrio Priority
		wantAny  bool
	}{
		{1, PriorityHigh, true},
		{2.9, PriorityHigh, true},
		{3, PriorityMedium, true},
		{5, PriorityMedium, true},
		{5.1, 0, false},
		{10, 0, false},
	}

	for _, tc := range tests {
		s := healthySummary()
		s.EmotionalEnergy = tc.energy
		c, ok := findType(Evaluate(DefaultRules(), s), TypeEnergyBoost)
		if ok != tc.wantAny {
			t.Errorf("energy %.1f: expected fired=%v, got %v", tc.energy, tc.wantAny, ok)
			continue
		}
		if ok && c.Priority != tc.wantPrio {
			t.Errorf("energy %.1f: expected %s, got %s", tc.energy, tc.wantPrio, c.Priority)
		}
	}
}

// --- Social time ---

func TestEvaluate_SocialNeedsGoodEnergy(t *testing.T) {
	s := healthySummary()
	s.SocialTime = 1
	c, ok := findType(Evaluate(DefaultRules(), s), TypeSocialSuggestion)
	if !ok {
		t.Fatal("expected social_suggestion with low social time and energy 7")
	}
	if c.Priority != PriorityLow {
		t.Errorf("expected low priority, got %s", c.Priority)
	}

	s.EmotionalEnergy = 5.9
	if _, ok := findType(Evaluate(DefaultRules(), s), TypeSocialSuggestion); ok {
		t.Error("social_suggestion should require energy >= 6")
	}

	s = healthySummary()
	s.SocialTime = 1.5
	if _, ok := findType(Evaluate(DefaultRules(), s), TypeSocialSuggestion); ok {
		t.Error("social time of exactly 1.5 should not trigger")
	}
}

// --- Advisories and fallbacks ---

func TestEvaluate_HealthySummaryFiresNothing(t *testing.T) {
	cands := Evaluate(DefaultRules(), healthySummary())
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %v", firedRules(cands))
	}
}

func TestEvaluate_LightDayReplacesAdvisories(t *testing.T) {
	s := MetricSummary{WorkHours: 0, ScreenTime: 2.5, Known: FieldWork | FieldScreen}
	cands := Evaluate(DefaultRules(), s)
	if len(cands) != 1 {
		t.Fatalf("expected only light_day, got %v", firedRules(cands))
	}
	if cands[0].Rule != "light_day" {
		t.Errorf("expected light_day, got %q", cands[0].Rule)
	}
}

func TestEvaluate_LightDaySuppressedByTypedRule(t *testing.T) {
	s := MetricSummary{WorkHours: 2, ScreenTime: 1, EmotionalEnergy: 2, Known: FieldWork | FieldScreen | FieldEnergy}
	cands := Evaluate(DefaultRules(), s)
	for _, c := range cands {
		if c.Rule == "light_day" {
			t.Fatal("light_day must not fire alongside a typed suggestion")
		}
	}
	if _, ok := findType(cands, TypeEnergyBoost); !ok {
		t.Errorf("expected energy_boost, got %v", firedRules(cands))
	}
}

func TestEvaluate_ScreenOverWorkMargin(t *testing.T) {
	s := MetricSummary{WorkHours: 4, ScreenTime: 6, Known: FieldWork | FieldScreen}
	for _, c := range Evaluate(DefaultRules(), s) {
		if c.Rule == "screen_over_work" {
			t.Fatal("screen exactly work+2 should not trigger")
		}
	}
	s.ScreenTime = 6.5
	found := false
	for _, c := range Evaluate(DefaultRules(), s) {
		if c.Rule == "screen_over_work" {
			found = true
		}
	}
	if !found {
		t.Error("expected screen_over_work when screen exceeds work by more than 2")
	}
}

func TestEvaluate_UnknownFieldsNeverFire(t *testing.T) {
	// Instant summaries leave energy at zero; energy_depleted must not read it.
	s := MetricSummary{WorkHours: 5, ScreenTime: 4, Known: FieldWork | FieldScreen}
	if cands := Evaluate(DefaultRules(), s); len(cands) != 0 {
		t.Fatalf("expected nothing, got %v", firedRules(cands))
	}
}

func TestEvaluate_RuleTableOrder(t *testing.T) {
	s := fullSummary(6, 12, 0.5, 11, 2)
	got := firedRules(Evaluate(DefaultRules(), s))
	want := []string{"work_excessive", "screen_excessive", "energy_depleted", "evening_downtime"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEvaluate_NoRules(t *testing.T) {
	if cands := Evaluate(nil, healthySummary()); len(cands) != 0 {
		t.Fatalf("expected 0 candidates, got %d", len(cands))
	}
}

func TestDefaultRules_FreshCopy(t *testing.T) {
	a := DefaultRules()
	a[0].Priority = PriorityLow
	b := DefaultRules()
	if b[0].Priority != PriorityHigh {
		t.Error("mutating one rule table leaked into another")
	}
}

func TestDefaultRules_MessagesNonEmpty(t *testing.T) {
	s := fullSummary(7, 9, 1, 9, 4)
	for _, r := range DefaultRules() {
		if r.Name == "" {
			t.Error("rule with empty name")
		}
		if msg := r.Message(s); msg == "" {
			t.Errorf("rule %q produced an empty message", r.Name)
		}
		if !r.Advisory() && !r.Type.IsValid() {
			t.Errorf("rule %q has unknown type %q", r.Name, r.Type)
		}
	}
}

// --- Message formatting ---

func TestBeyond(t *testing.T) {
	tests := []struct {
		v, limit float64
		want     string
	}{
		{9.5, 8, "9.5"},
		{11, 10, "11.0"},
		{8.04, 8, "8.04"},
		{8.0001, 8, "8.0001"},
		{8.000001, 8, "8.000001"},
		{1.46, 1.5, "1.46"},
		{1.2, 1.5, "1.2"},
	}
	for _, tc := range tests {
		if got := beyond(tc.v, tc.limit); got != tc.want {
			t.Errorf("beyond(%g, %g) = %q, want %q", tc.v, tc.limit, got, tc.want)
		}
	}
}

func TestEvaluate_MessagesAgreeWithThresholds(t *testing.T) {
	cands := Evaluate(DefaultRules(), fullSummary(8, 8.0001, 1.46, 10.02, 7))

	work, ok := findType(cands, TypeWorkBreak)
	if !ok {
		t.Fatal("expected a work break")
	}
	if !strings.Contains(work.Message, "over 8 hours (8.0001h)") {
		t.Errorf("work message = %q", work.Message)
	}

	screen, ok := findType(cands, TypeScreenBreak)
	if !ok {
		t.Fatal("expected a screen break")
	}
	if !strings.Contains(screen.Message, "over 10 hours (10.02h)") {
		t.Errorf("screen message = %q", screen.Message)
	}

	social, ok := findType(cands, TypeSocialSuggestion)
	if !ok {
		t.Fatal("expected a social suggestion")
	}
	if !strings.Contains(social.Message, "under 1.5 hours (1.46h)") {
		t.Errorf("social message = %q", social.Message)
	}
}
