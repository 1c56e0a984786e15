package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	cache := NewSessionCache(path)

	s, err := cache.Load()
	require.NoError(t, err)
	assert.Nil(t, s, "empty cache loads as no session")

	want := &Session{
		User:  User{ID: "u1", Name: "Alice", Email: "a@example.com"},
		Token: "tok-123",
	}
	require.NoError(t, cache.Save(want))

	got, err := cache.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.User.Email, got.User.Email)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSessionCache_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	cache := NewSessionCache(path)

	require.NoError(t, cache.Save(&Session{Token: "tok"}))
	require.NoError(t, cache.Clear())
	// Clearing twice is fine.
	require.NoError(t, cache.Clear())

	s, err := cache.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionCache_CorruptFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewSessionCache(path).Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionCache_EmptyTokenIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"id":"u1"}}`), 0o600))

	s, err := NewSessionCache(path).Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}
