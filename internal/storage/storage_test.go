package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("tasks", "[]"))
	require.NoError(t, s.Set("tasks", `[{"id":0}]`))

	v, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":0}]`, v)

	require.NoError(t, s.Set("current-id", "1"))
	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"current-id", "tasks"}, keys)

	require.NoError(t, s.Delete("tasks"))
	_, ok, err = s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("current-id", "7"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("current-id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))
	dsn := sqliteDSN("/tmp/todo.db")
	assert.Contains(t, dsn, "file:///tmp/todo.db")
	assert.Contains(t, dsn, "mode=rwc")
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("b", "2"))
	require.NoError(t, m.Set("a", "1"))
	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	v, ok, _ := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	require.NoError(t, m.Delete("a"))
	_, ok, _ = m.Get("a")
	assert.False(t, ok)
}
