package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/todo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	v, ok, err := s.Get(context.Background(), store.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, store.DefaultKey, []byte(`[{"id":"a","text":"long value"}]`)))
	require.NoError(t, s.Set(ctx, store.DefaultKey, []byte(`[]`)))

	raw, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	v, ok, err := s.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}

func TestRejectsPathKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	err = s.Set(context.Background(), "../escape", []byte("x"))
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}
