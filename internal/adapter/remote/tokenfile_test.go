package remote_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/adapter/remote"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "token")
	store := remote.NewFileTokenStore(path)

	token, err := store.Token()
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, store.SetToken("tok-123"))

	token, err = store.Token()
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileTokenStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := remote.NewFileTokenStore(path)

	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	token, err := store.Token()
	require.NoError(t, err)
	require.Empty(t, token)
}
