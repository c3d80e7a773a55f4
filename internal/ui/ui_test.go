package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "██████████ 100%", ProgressBar(3, 3, 10))
}

func TestPanelPadsToWidestVisibleLine(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	// The escape codes must not count toward the width.
	Panel(&buf, []string{"\033[1mab\033[0m", "☐ wide"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "+--------+", lines[0])
	assert.Equal(t, "| \033[1mab\033[0m     |", lines[1])
	assert.Equal(t, "| ☐ wide |", lines[2])
	assert.Equal(t, "+--------+", lines[3])
}

func TestMonoDisablesColor(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	SetColorForcing(true, true)
	defer SetColorForcing(false, false)

	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestForcedColor(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
	assert.Equal(t, "x", C("", "x"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate(strings.Repeat("a", 20), 10)
	assert.Equal(t, "aaaaaaa...", got)
}

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme("Neon"))
	assert.False(t, ValidTheme("solarized"))
}
