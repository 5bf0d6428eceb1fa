package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSavePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ANTHROPIC_API_KEY=sk-test\nSTRAVA_CLIENT_ID=12345\nSTRAVA_CLIENT_SECRET=shh\n"), 0644))

	store := NewFileStore(path)
	err := store.Save(Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})
	require.NoError(t, err)

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", values["ANTHROPIC_API_KEY"])
	assert.Equal(t, "12345", values[KeyClientID])
	assert.Equal(t, "shh", values[KeyClientSecret])
	assert.Equal(t, "access-1", values[KeyAccessToken])
	assert.Equal(t, "refresh-1", values[KeyRefreshToken])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewFileStore(path)

	want := Credentials{ClientID: "1", ClientSecret: "two", AccessToken: "three", RefreshToken: "four"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Save(Credentials{AccessToken: "five", RefreshToken: "six"}))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{ClientID: "1", ClientSecret: "two", AccessToken: "five", RefreshToken: "six"}, got)
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	got, err := NewFileStore(filepath.Join(t.TempDir(), "missing.env")).Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, got)
}

func TestValidateClient(t *testing.T) {
	assert.NoError(t, ValidateClient(Credentials{ClientID: "1", ClientSecret: "s"}))
	assert.ErrorIs(t, ValidateClient(Credentials{ClientSecret: "s"}), ErrMissingClient)
	assert.ErrorIs(t, ValidateClient(Credentials{ClientID: "1"}), ErrMissingClient)
	assert.ErrorIs(t, ValidateClient(Credentials{ClientID: "1", ClientSecret: "your_client_secret_here"}), ErrMissingClient)
}
