package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strava-haddock/config"
)

func TestRootCmdRequiresAccessToken(t *testing.T) {
	t.Setenv("STRAVA_ACCESS_TOKEN", "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ANTHROPIC_API_KEY=sk-test\n"), 0600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--env-file", path, "--dry-run"})

	assert.ErrorIs(t, cmd.Execute(), config.ErrMissingAccessToken)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"dry-run", "activity", "activities", "env-file", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, config.DefaultEnvFile, cmd.Flags().Lookup("env-file").DefValue)
}
