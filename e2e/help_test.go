//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "-store backend")
	require.Contains(t, output, "TMDB_API_TOKEN")
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cmd := exec.Command(binPath, "-config", path, "-store", "redis", "-write-config")
	cmd.Env = append(os.Environ(), "TMDB_API_TOKEN=secret-token", "REELFIND_DEBOUNCE_MS=250")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "debounce_ms = 250")
	require.Contains(t, content, "backend = 'redis'")
	require.NotContains(t, content, "secret-token", "the token is never written to disk")
}

func TestUnknownStoreFails(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(binPath, "-config", filepath.Join(t.TempDir(), "none.toml"), "-store", "cassandra")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "REELFIND_LOG_FILE="+filepath.Join(t.TempDir(), "x.log"))
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	require.Contains(t, string(out), "cassandra")
}
