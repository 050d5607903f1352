package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestPort(t *testing.T) {
	clearEnv(t, "APP_PORT")
	assert.Equal(t, ":8080", Port())

	t.Setenv("APP_PORT", ":9000")
	assert.Equal(t, ":9000", Port())
}

func TestDevelopment(t *testing.T) {
	clearEnv(t, "DEVELOPMENT")
	assert.False(t, Development())

	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())

	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())

	t.Setenv("DEVELOPMENT", "false")
	assert.False(t, Development())

	t.Setenv("DEVELOPMENT", "true")
	assert.True(t, Development())

	t.Setenv("DEVELOPMENT", "")
	assert.False(t, Development())

	t.Setenv("DEVELOPMENT", "yes")
	assert.True(t, Development())
}

func TestStore(t *testing.T) {
	clearEnv(t, "STORE")
	kind, err := Store()
	require.NoError(t, err)
	assert.Equal(t, MemoryStore, kind)

	t.Setenv("STORE", "Badger")
	kind, err = Store()
	require.NoError(t, err)
	assert.Equal(t, BadgerStore, kind)

	t.Setenv("STORE", "redis")
	_, err = Store()
	assert.Error(t, err)
}

func TestDbURL(t *testing.T) {
	clearEnv(t, "DATABASE_URL", "POSTGRES_PASSWORD", "POSTGRES_PASSWORD_FILE",
		"POSTGRES_PORT", "POSTGRES_SSLMODE")

	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "minesweeper")

	_, err := DbURL()
	assert.Error(t, err, "password is required")

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("p@ss word\n"), 0o600))
	t.Setenv("POSTGRES_PASSWORD_FILE", passwordFile)

	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://mines:p%40ss+word@db:5432/minesweeper?sslmode=disable", url)

	t.Setenv("POSTGRES_PORT", "not a port")
	_, err = DbURL()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://elsewhere/db")
	url, err = DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://elsewhere/db", url)

	t.Setenv("POSTGRES_MAX_CONNS", "7")
	cfg, err := NewPgxpoolConfig()
	require.NoError(t, err)
	assert.EqualValues(t, 7, cfg.MaxConns)
}

func TestNewWebSocket(t *testing.T) {
	clearEnv(t, "DEVELOPMENT", "WS_READ_LIMIT")
	ws, err := NewWebSocket()
	require.NoError(t, err)
	assert.Nil(t, ws.Upgrader.CheckOrigin)
	assert.EqualValues(t, 4096, ws.ReadLimit)

	t.Setenv("DEVELOPMENT", "1")
	t.Setenv("WS_READ_LIMIT", "128")
	ws, err = NewWebSocket()
	require.NoError(t, err)
	assert.NotNil(t, ws.Upgrader.CheckOrigin)
	assert.EqualValues(t, 128, ws.ReadLimit)

	t.Setenv("WS_READ_LIMIT", "-1")
	_, err = NewWebSocket()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	clearEnv(t, "DEVELOPMENT", "LOG_FILE", "LOG_FILE_MAX_SIZE")
	logger, err := NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	t.Setenv("DEVELOPMENT", "1")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "server.log"))
	logger, err = NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.NotEmpty(t, logger.Hooks[logrus.ErrorLevel])

	t.Setenv("LOG_FILE_MAX_SIZE", "big")
	_, err = NewLogger()
	assert.Error(t, err)
}
