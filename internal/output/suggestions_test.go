package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

func TestPriorityLabel(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "[HIGH]", PriorityLabel(suggest.PriorityHigh))
	assert.Equal(t, "[MEDIUM]", PriorityLabel(suggest.PriorityMedium))
	assert.Equal(t, "[LOW]", PriorityLabel(suggest.PriorityLow))
}

func TestSuggestionList(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out := SuggestionList([]suggest.Suggestion{
		{Type: suggest.TypeWorkBreak, Message: "Take a break.", Priority: suggest.PriorityHigh},
		{Type: suggest.TypeSocialSuggestion, Message: "Call a friend.", Priority: suggest.PriorityLow},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		" [HIGH]   Take a break.",
		" [LOW]    Call a friend.",
	}, lines)
}

func TestSuggestionList_Empty(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Contains(t, SuggestionList(nil), suggest.DefaultMessage)
}

func TestMessageList(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, " • one\n • two\n", MessageList([]string{"one", "two"}))
}

func TestHoursBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "██████░░░░░░ 12.0h", HoursBar(12, 8, 10, 12))
	assert.Equal(t, "░░░░ 0.0h", HoursBar(0, 8, 10, 4))
	assert.Equal(t, "████ 30.0h", HoursBar(30, 8, 10, 4))
}

func TestEnergyMeter(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "7/10", EnergyMeter(7))
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "▲ +1.5", TrendArrow(1.5, true))
	assert.Equal(t, "▼ -2.0", TrendArrow(-2, false))
	assert.Equal(t, "─", TrendArrow(0, true))
}
