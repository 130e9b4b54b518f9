package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "credential"))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "fresh store must report no credential")

	require.NoError(t, store.Save("tok-123"))

	token, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)

	// A second store on the same path sees the credential: it survives the
	// process that wrote it.
	reopened := NewFileStore(store.path)
	token, ok, err = reopened.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credential"))
	require.NoError(t, store.Save("tok"))

	require.NoError(t, store.Clear())
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save("tok"))
	token, ok, _ := store.Load()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	_, ok, _ = store.Load()
	assert.False(t, ok)
}
