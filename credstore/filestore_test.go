package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hemahemapathi/health-management-client/credstore"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs := credstore.NewFileStore(t.TempDir())

	_, ok := fs.Load()
	require.False(t, ok, "empty store should report no token")

	fs.Save("bearer-token-1")
	token, ok := fs.Load()
	require.True(t, ok)
	require.Equal(t, "bearer-token-1", token)

	fs.Save("bearer-token-2")
	token, ok = fs.Load()
	require.True(t, ok)
	require.Equal(t, "bearer-token-2", token, "save overwrites prior value")
}

func TestFileStoreClear(t *testing.T) {
	fs := credstore.NewFileStore(t.TempDir())

	fs.Save("bearer-token")
	fs.Clear()
	_, ok := fs.Load()
	require.False(t, ok)

	// Clearing an empty store is a no-op.
	fs.Clear()
	_, ok = fs.Load()
	require.False(t, ok)
}

func TestFileStorePermissions(t *testing.T) {
	dir := t.TempDir()
	fs := credstore.NewFileStore(dir)
	fs.Save("bearer-token")

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreIgnoresBlankFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("  \n"), 0o600))

	fs := credstore.NewFileStore(dir)
	_, ok := fs.Load()
	require.False(t, ok)
}
