package suggest

// Engine runs an immutable rule table through the aggregate, evaluate,
// deduplicate and rank stages. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	rules []Rule
}

// InstantResult is the output of an instant check.
type InstantResult struct {
	WorkHours   float64  `json:"work_hours"`
	ScreenTime  float64  `json:"screen_time"`
	Suggestions []string `json:"suggestions"`
}

// NewEngine creates an engine with the built-in rules followed by any extra
// rules, typically compiled operator advisories.
func NewEngine(extra ...Rule) *Engine {
	rules := DefaultRules()
	rules = append(rules, extra...)
	return &Engine{rules: rules}
}

// Rules returns a copy of the engine's rule table.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Suggest aggregates metrics and returns the deduplicated, priority-sorted
// typed suggestions. The result may be empty.
func (e *Engine) Suggest(metrics []DailyMetric) ([]Suggestion, error) {
	summary, err := Aggregate(metrics)
	if err != nil {
		return nil, err
	}
	return e.SuggestSummary(summary), nil
}

// SuggestSummary runs aggregate mode on an already computed summary.
func (e *Engine) SuggestSummary(summary MetricSummary) []Suggestion {
	candidates := Deduplicate(Evaluate(e.rules, summary))
	return RankSuggestions(Typed(candidates))
}

// Check runs instant mode on raw scalars. Messages come back in rule-table
// order, not sorted. When nothing applies the result holds DefaultMessage.
func (e *Engine) Check(workHours, screenTime float64, opts ...InstantOption) (InstantResult, error) {
	summary, err := InstantSummary(workHours, screenTime, opts...)
	if err != nil {
		return InstantResult{}, err
	}
	messages := Messages(Deduplicate(Evaluate(e.rules, summary)))
	if len(messages) == 0 {
		messages = []string{DefaultMessage}
	}
	return InstantResult{
		WorkHours:   workHours,
		ScreenTime:  screenTime,
		Suggestions: messages,
	}, nil
}
