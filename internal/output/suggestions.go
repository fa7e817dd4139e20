package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// PriorityLabel renders a priority as a bracketed, colored tag.
func PriorityLabel(p suggest.Priority) string {
	label := "[" + strings.ToUpper(p.String()) + "]"
	switch p {
	case suggest.PriorityHigh:
		return StyleError.Render(label)
	case suggest.PriorityMedium:
		return StyleWarning.Render(label)
	default:
		return StyleMuted.Render(label)
	}
}

// SuggestionList renders ranked suggestions one per line. An empty list
// renders the default balance message.
func SuggestionList(suggestions []suggest.Suggestion) string {
	if len(suggestions) == 0 {
		return " " + StyleSuccess.Render(suggest.DefaultMessage) + "\n"
	}

	var sb strings.Builder
	for _, s := range suggestions {
		fmt.Fprintf(&sb, " %s %s\n", pad(PriorityLabel(s.Priority), 8), s.Message)
	}
	return sb.String()
}

// MessageList renders instant-check messages as a bulleted list.
func MessageList(messages []string) string {
	var sb strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&sb, " %s %s\n", StyleMuted.Render("•"), m)
	}
	return sb.String()
}
