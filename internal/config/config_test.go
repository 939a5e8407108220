package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.OutboxDir)
	assert.Equal(t, 3600, cfg.CheckIntervalSec)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		DBPath:           "/tmp/cadence-test/cadence.db",
		OutboxDir:        "/tmp/cadence-test/outbox",
		ReminderFrom:     "reminders@example.com",
		ReminderTo:       "inbox@example.com",
		CheckIntervalSec: 900,
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("check_interval_sec: 60\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.CheckIntervalSec)
	assert.NotEmpty(t, cfg.DBPath, "unset keys fall back to defaults")
}

func TestLoad_NonPositiveIntervalFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("check_interval_sec: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3600, cfg.CheckIntervalSec)
}
