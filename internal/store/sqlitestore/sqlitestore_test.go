package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/todo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGetSetUpsert(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	_, ok, err := s.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, store.DefaultKey, []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, store.DefaultKey, []byte(`[2]`)))

	v, ok, err := s.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", string(v))
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.Set(ctx, "todos", []byte(`[]`)))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}

func TestClosed(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err := s.Get(ctx, "todos")
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, s.Set(ctx, "todos", nil), store.ErrClosed)
}
