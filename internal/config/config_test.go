package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvBanks, EnvLog, EnvLogLevel, EnvVoice, EnvTTS, EnvAddr, EnvAllowedOrigins} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.BankDirs)
	assert.Equal(t, filepath.Join("/tmp/state", "lisquiz", "lisquiz.log"), cfg.LogPath)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, DefaultTTS, cfg.TTS)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDB, "/data/quiz.db")
	t.Setenv(EnvBanks, "/banks/a"+string(os.PathListSeparator)+" /banks/b ")
	t.Setenv(EnvLog, "/logs/q.log")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvVoice, "Samantha")
	t.Setenv(EnvTTS, "off")
	t.Setenv(EnvAddr, "127.0.0.1:9000")
	t.Setenv(EnvAllowedOrigins, "http://a.test, http://b.test,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/data/quiz.db", cfg.DBPath)
	assert.Equal(t, []string{"/banks/a", "/banks/b"}, cfg.BankDirs)
	assert.Equal(t, "/logs/q.log", cfg.LogPath)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "Samantha", cfg.Voice)
	assert.Equal(t, "off", cfg.TTS)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestFromEnvBadLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "loud")

	_, err := FromEnv()
	assert.ErrorContains(t, err, EnvLogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LISQUIZ_VOICE=Daniel\nLISQUIZ_TTS=espeak\n"), 0o644))

	// Already-set variables win over the file.
	t.Setenv(EnvTTS, "say")
	// An empty but present variable also counts as set.
	os.Unsetenv(EnvVoice)
	t.Cleanup(func() { os.Unsetenv(EnvVoice) })

	require.NoError(t, LoadDotEnv(path))

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "Daniel", cfg.Voice)
	assert.Equal(t, "say", cfg.TTS)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
