package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_FollowsWidth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)
	defer SetWidth(DefaultWidth)

	SetWidth(40)
	lines := strings.Split(Section("Last 7 days"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " Last 7 days", lines[1])
	assert.Equal(t, " "+strings.Repeat("─", 39), lines[2])

	SetWidth(5)
	assert.Equal(t, 20, Width())
}
