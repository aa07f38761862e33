package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save("poster.jpg", strings.NewReader("not really a jpeg"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	assert.NotContains(t, ref, "poster", "reference must not leak the upload name")

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "not really a jpeg", string(data))

	require.NoError(t, store.Remove(ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	assert.NoError(t, store.Remove(ref))
}

func TestDiskStoreRefsAreUnique(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save("poster.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save("poster.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
