package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/fognav/agent"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, agent.SensorNames(), cfg.Experiment.Sensors)
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv("FOGNAV_TEST_OUT", "sweep.xlsx")
	path := writeFile(t, "fognav.yaml", `
grid:
  width: 20
  height: 10
experiment:
  iterations: 5
  max_density: 40
  sensors: [four-neighbor]
  output: ${FOGNAV_TEST_OUT}
  format: xlsx
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Grid.Width)
	assert.Equal(t, 10, cfg.Grid.Height)
	assert.Equal(t, 0.3, cfg.Grid.Density, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Experiment.Iterations)
	assert.Equal(t, []string{agent.SensorFourNeighbor}, cfg.Experiment.Sensors)
	assert.Equal(t, "sweep.xlsx", cfg.Experiment.Output)
	assert.Equal(t, "debug", cfg.Log.Level)

	plan := cfg.Plan()
	assert.Equal(t, 41*5, plan.Trials())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "fognav.yaml", "grid:\n  width: 20\n")
	t.Setenv("FOGNAV_GRID_WIDTH", "30")
	t.Setenv("FOGNAV_SENSORS", "blindfolded, four-neighbor,")
	t.Setenv("FOGNAV_SEED", "99")
	t.Setenv("FOGNAV_WORKERS", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Grid.Width)
	assert.Equal(t, []string{agent.SensorBlindfolded, agent.SensorFourNeighbor}, cfg.Experiment.Sensors)
	assert.Equal(t, int64(99), cfg.Grid.Seed)
	assert.Equal(t, int64(99), cfg.Experiment.Seed)
	assert.Equal(t, 0, cfg.Experiment.Workers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "grid:\n  depth: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	tests := map[string]string{
		"tiny grid":    "grid: {width: 1, height: 1}",
		"density":      "grid: {density: 1.5}",
		"workers":      "experiment: {workers: -1}",
		"backtrack":    "experiment: {backtrack: 0}",
		"sensor":       "experiment: {sensors: [sonar]}",
		"format":       "experiment: {format: json}",
		"log level":    "log: {level: loud}",
		"log format":   "log: {format: xml}",
		"max density":  "experiment: {max_density: 120}",
		"no iteration": "experiment: {iterations: 0}",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "fognav.yaml", body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	const key = "FOGNAV_TEST_DOTENV"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := writeFile(t, ".env", key+"=from-file\n")
	require.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env"), path))
	assert.Equal(t, "from-file", os.Getenv(key))

	t.Setenv(key, "from-env")
	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "from-env", os.Getenv(key), "existing variables win")
}
