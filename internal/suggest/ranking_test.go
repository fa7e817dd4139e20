package suggest

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cand(t SuggestionType, p Priority, msg string) Candidate {
	return Candidate{
		Suggestion: Suggestion{Type: t, Message: msg, Priority: p},
		Rule:       msg,
		Advisory:   t == "",
	}
}

// --- Deduplicate ---

func TestDeduplicate_KeepsHighestPriority(t *testing.T) {
	in := []Candidate{
		cand(TypeWorkBreak, PriorityMedium, "medium work"),
		cand(TypeScreenBreak, PriorityHigh, "screen"),
		cand(TypeWorkBreak, PriorityHigh, "high work"),
		cand(TypeWorkBreak, PriorityLow, "low work"),
	}
	got := Messages(Deduplicate(in))
	want := []string{"high work", "screen"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Deduplicate mismatch (-want +got):\n%s", diff)
	}
}

func TestDeduplicate_TieKeepsFirst(t *testing.T) {
	in := []Candidate{
		cand(TypeEnergyBoost, PriorityMedium, "first"),
		cand(TypeEnergyBoost, PriorityMedium, "second"),
	}
	got := Deduplicate(in)
	if len(got) != 1 || got[0].Message != "first" {
		t.Errorf("expected only the first candidate, got %+v", got)
	}
}

func TestDeduplicate_AdvisoriesNeverMerged(t *testing.T) {
	in := []Candidate{
		cand("", PriorityLow, "a"),
		cand("", PriorityLow, "b"),
		cand(TypeWorkBreak, PriorityMedium, "work"),
		cand("", PriorityLow, "c"),
	}
	got := Deduplicate(in)
	if len(got) != 4 {
		t.Fatalf("expected all 4 candidates, got %d", len(got))
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

// --- RankSuggestions ---

func TestRankSuggestions_StableDescending(t *testing.T) {
	in := []Suggestion{
		{Type: TypeSocialSuggestion, Message: "low", Priority: PriorityLow},
		{Type: TypeWorkBreak, Message: "medium-1", Priority: PriorityMedium},
		{Type: TypeScreenBreak, Message: "high-1", Priority: PriorityHigh},
		{Type: TypeEnergyBoost, Message: "medium-2", Priority: PriorityMedium},
		{Type: TypeWorkBreak, Message: "high-2", Priority: PriorityHigh},
	}
	got := RankSuggestions(in)
	var msgs []string
	for _, s := range got {
		msgs = append(msgs, s.Message)
	}
	want := []string{"high-1", "high-2", "medium-1", "medium-2", "low"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("rank mismatch (-want +got):\n%s", diff)
	}
}

func TestRankSuggestions_DoesNotMutateInput(t *testing.T) {
	in := []Suggestion{
		{Message: "low", Priority: PriorityLow},
		{Message: "high", Priority: PriorityHigh},
	}
	_ = RankSuggestions(in)
	if in[0].Message != "low" {
		t.Error("RankSuggestions modified its input slice")
	}
}

// --- Typed / Messages ---

func TestTyped_SkipsAdvisories(t *testing.T) {
	in := []Candidate{
		cand("", PriorityLow, "advisory"),
		cand(TypeWorkBreak, PriorityHigh, "work"),
	}
	got := Typed(in)
	if len(got) != 1 || got[0].Type != TypeWorkBreak {
		t.Errorf("expected only the work_break suggestion, got %+v", got)
	}
}

// --- Priority ---

func TestPriority_JSONLabels(t *testing.T) {
	s := Suggestion{Type: TypeWorkBreak, Message: "m", Priority: PriorityMedium}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"work_break","message":"m","priority":"medium"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	var back Suggestion
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != s {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestParsePriority_Unknown(t *testing.T) {
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority label")
	}
}

func TestPriority_Outranks(t *testing.T) {
	if !PriorityHigh.Outranks(PriorityMedium) || !PriorityMedium.Outranks(PriorityLow) {
		t.Error("expected high > medium > low")
	}
	if PriorityLow.Outranks(PriorityLow) {
		t.Error("a priority must not outrank itself")
	}
}
