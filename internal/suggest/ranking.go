package suggest

import "sort"

// Deduplicate keeps one candidate per SuggestionType: the highest priority
// one, or the first encountered on a tie. Advisories pass through untouched.
// Each surviving candidate keeps the position of its type's first occurrence.
func Deduplicate(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	slot := make(map[SuggestionType]int)
	for _, c := range candidates {
		if c.Advisory || c.Type == "" {
			out = append(out, c)
			continue
		}
		i, seen := slot[c.Type]
		if !seen {
			slot[c.Type] = len(out)
			out = append(out, c)
			continue
		}
		if c.Priority.Outranks(out[i].Priority) {
			out[i] = c
		}
	}
	return out
}

// RankSuggestions returns a copy of suggestions sorted by priority, most
// urgent first. Equal priorities keep their input order.
func RankSuggestions(suggestions []Suggestion) []Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Outranks(sorted[j].Priority)
	})
	return sorted
}

// Typed returns the suggestions of non-advisory candidates, in order.
func Typed(candidates []Candidate) []Suggestion {
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.Advisory {
			continue
		}
		out = append(out, c.Suggestion)
	}
	return out
}

// Messages projects candidates to their message text, keeping rule-table
// order.
func Messages(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Message)
	}
	return out
}
