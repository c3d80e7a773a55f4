package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "key", "todos")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=todos")
	assert.Contains(t, out, "todo")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")

	l, c, err := OpenFile(path, "info")
	require.NoError(t, err)
	l.Info("first")
	require.NoError(t, c.Close())

	l, c, err = OpenFile(path, "info")
	require.NoError(t, err)
	l.Info("second")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "first")
	assert.Contains(t, string(b), "second")
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	l, c, err := OpenFile("", "info")
	require.NoError(t, err)
	l.Info("nowhere")
	assert.NoError(t, c.Close())
}
