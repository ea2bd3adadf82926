package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "data", "studyplan.db")
	raw := "server:\n  port: 9000\ndatabase:\n  path: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, dbPath, cfg.Database.Path)
	assert.Equal(t, 365, cfg.Planning.MaxRangeDays)
	assert.Equal(t, "monday", cfg.Planning.WeekStart)
	assert.Equal(t, 60, cfg.Planning.MinSessionMinutes)
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis:6379")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := "redis:\n  address: ${TEST_REDIS_ADDR}\ndatabase:\n  path: " + filepath.Join(dir, "db", "test.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
}

func TestWeekStartDay(t *testing.T) {
	cfg := Default()
	day, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	cfg.Planning.WeekStart = "Sunday"
	day, err = cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	cfg.Planning.WeekStart = "yesterday"
	_, err = cfg.WeekStartDay()
	assert.Error(t, err)
}

func TestCacheTTL(t *testing.T) {
	cfg := Default()
	assert.Zero(t, cfg.CacheTTL())

	cfg.Redis.CacheTTLSeconds = 30
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
}
