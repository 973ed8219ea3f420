package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := readConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.runSeconds)
	assert.Equal(t, 0, cfg.rounds)
	assert.False(t, cfg.logToFile)
	assert.Equal(t, "log.txt", cfg.logFile)
	assert.Equal(t, 5*time.Second, cfg.workMin)
	assert.Equal(t, 10*time.Second, cfg.workMax)
	assert.Equal(t, time.Duration(0), cfg.waitTimeout)
	assert.Equal(t, "cond", cfg.signals)
	assert.Equal(t, "supply:stats", cfg.statsPrefix)
	assert.Equal(t, 24*time.Hour, cfg.statsTTL)
}

func TestReadConfig_PositionalArgs(t *testing.T) {
	cfg, err := readConfig([]string{"30", "T"})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.runSeconds)
	assert.True(t, cfg.logToFile)

	_, err = readConfig([]string{"abc", "F"})
	assert.Error(t, err)
	_, err = readConfig([]string{"10", "yes"})
	assert.Error(t, err)
	_, err = readConfig([]string{"10"})
	assert.Error(t, err)
}

func TestReadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supply.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rounds: 12
seed: 77
work_min: 1ms
work_max: 3ms
signals: chan
stats:
  prefix: "econ"
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ROUNDS", "40")
	t.Setenv("WAIT_TIMEOUT", "2s")

	cfg, err := readConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.rounds)
	assert.Equal(t, uint64(77), cfg.seed)
	assert.Equal(t, time.Millisecond, cfg.workMin)
	assert.Equal(t, 3*time.Millisecond, cfg.workMax)
	assert.Equal(t, 2*time.Second, cfg.waitTimeout)
	assert.Equal(t, "chan", cfg.signals)
	assert.Equal(t, "econ", cfg.statsPrefix)
}

func TestReadConfig_Validation(t *testing.T) {
	cases := map[string]map[string]string{
		"stats without addr": {"STATS_ENABLED": "true"},
		"work window":        {"WORK_MIN": "2s", "WORK_MAX": "1s"},
		"signals":            {"SIGNALS": "spin"},
		"negative rounds":    {"ROUNDS": "-1"},
		"timeout below work": {"WORK_MAX": "10s", "WAIT_TIMEOUT": "15s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := readConfig(nil)
			assert.Error(t, err)
		})
	}
}

func TestReadConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: [1, 2"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := readConfig(nil)
	assert.Error(t, err)
}

func TestReadConfig_WaitTimeoutCoversTwoWorkPhases(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("WORK_MIN", "1s")
	t.Setenv("WORK_MAX", "2s")
	t.Setenv("WAIT_TIMEOUT", "4s")

	cfg, err := readConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.waitTimeout)

	t.Setenv("WAIT_TIMEOUT", "3s")
	_, err = readConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAIT_TIMEOUT")
}

func TestReadConfig_MalformedFileDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supply.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_min: 5 seconds\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := readConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "work_min")
}
