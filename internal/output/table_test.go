package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visualLen(tc.input))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hi        ", pad("hi", 10))
	assert.Equal(t, "hello", pad("hello", 5))
	assert.Equal(t, "toolong", pad("toolong", 3))

	// Escapes do not count toward the width.
	colored := "\x1b[31m[HIGH]\x1b[0m"
	assert.Equal(t, 8, visualLen(pad(colored, 8)))
}

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Date", "Work")
	tbl.AddRow("2024-03-01", "8.5h")
	tbl.AddRow("2024-03-02", "11.0h")

	out := tbl.Render()
	assert.Contains(t, out, "Date")
	assert.Contains(t, out, "2024-03-02")
	assert.Contains(t, out, "─")
	assert.Equal(t, 2, tbl.Len())

	// header + separator + 2 data rows
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2024-03-01  8.5h ", lines[2])
	assert.Equal(t, tbl.Render(), tbl.String())
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().Render())
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.NotContains(t, StyleHeader.Render("test"), "\x1b[")
	assert.NotContains(t, PriorityLabel(2), "\x1b[")

	SetNoColor(false)
	assert.False(t, IsNoColor())
}
