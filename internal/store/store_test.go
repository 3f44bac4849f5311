package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set("k", []byte("v1")))
	v, ok, err := m.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), v)

	require.NoError(t, m.Set("k", []byte("v2")))
	v, _, _ = m.Get("k")
	require.Equal(t, []byte("v2"), v)

	require.NoError(t, m.Delete("k"))
	_, ok, _ = m.Get("k")
	require.False(t, ok)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sqlite")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("k", []byte("v1")))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), v)

	// upsert overwrites
	require.NoError(t, s.Set("k", []byte("v2")))
	v, _, _ = s.Get("k")
	require.Equal(t, []byte("v2"), v)

	require.NoError(t, s.Delete("k"))
	_, ok, _ = s.Get("k")
	require.False(t, ok)

	// deleting an absent key is not an error
	require.NoError(t, s.Delete("k"))
}
