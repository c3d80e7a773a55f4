package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []byte(`[]`)
	require.NoError(t, m.Set(ctx, DefaultKey, in))
	in[0] = 'X'

	got, ok, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))
}

func TestMemoryClosed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Close())

	_, _, err := m.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, DefaultKey, nil), ErrClosed)
}

func TestValidKey(t *testing.T) {
	assert.NoError(t, ValidKey("todos"))
	for _, k := range []string{"", ".", "..", "a/b", `a\b`, "a\x00"} {
		assert.ErrorIs(t, ValidKey(k), ErrInvalidKey, "key %q", k)
	}
}
