package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStudy(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "study.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeStudy(t, dir, `
spec_version: 0.1.0
grid:
  name: office_floor_2
  points_file: grid.pts
  window_groups: [south_window, skylight]
results:
  folder: results
schedule:
  start_hour: 9
  end_hour: 17
  weekend: [6, 7]
metrics:
  da_threshold: 300
  udi_min: 100
  udi_max: 3000
blind_states:
  - "0 0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "office_floor_2", cfg.Grid.Name)
	assert.Equal(t, []string{"south_window", "skylight"}, cfg.Grid.WindowGroups)
	assert.Equal(t, 9, cfg.Schedule.StartHour)
	assert.Equal(t, []int{6, 7}, cfg.Schedule.Weekend)
	assert.Equal(t, 300.0, cfg.Metrics.DAThreshold)
	assert.Equal(t, []string{"0 0"}, cfg.BlindStates)

	// relative paths resolve against the config directory
	assert.Equal(t, filepath.Join(dir, "grid.pts"), cfg.Grid.PointsFile)
	assert.Equal(t, filepath.Join(dir, "results"), cfg.Results.Folder)
}

func TestLoadKeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeStudy(t, dir, `
grid:
  points_file: /data/grid.pts
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/grid.pts", cfg.Grid.PointsFile)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	writeStudy(t, dir, "grid:\n  points_file: grid.pts\n")

	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "grid.pts"), cfg.Grid.PointsFile)

	_, err = LoadProject(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeStudy(t, dir, "grid: [not a map\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestScheduleDefIsZero(t *testing.T) {
	assert.True(t, ScheduleDef{}.IsZero())
	assert.False(t, ScheduleDef{StartHour: 8, EndHour: 18}.IsZero())
	assert.False(t, ScheduleDef{Weekend: []int{6}}.IsZero())
}
