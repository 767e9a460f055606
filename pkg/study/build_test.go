package study

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ladybug-tools/daylightgrid/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProject lays down a minimal project: a two point grid and one merged
// result file with a sun sibling.
func writeProject(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "grid.pts"),
		[]byte("0 0 0.76 0 0 1\n1 0 0.76 0 0 1\n"), 0o644))

	resultDir := filepath.Join(dir, "results")
	require.NoError(t, os.Mkdir(resultDir, 0o755))
	writeMatrix(t, filepath.Join(resultDir, "scene..default.ill"),
		[][]float64{{420, 155}, {350, 60}})
	writeMatrix(t, filepath.Join(resultDir, "sun..scene..default.ill"),
		[][]float64{{20, 5}, {10, 0}})
	return dir
}

func writeMatrix(t *testing.T, path string, rows [][]float64) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "#?RADIANCE\nNROWS=%d\nNCOLS=%d\nFORMAT=ascii\n\n", len(rows), len(rows[0]))
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", v)
		}
		b.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestBuildGridFromFolder(t *testing.T) {
	dir := writeProject(t)
	cfg := &Config{
		Grid: GridDef{
			Name:       "office",
			PointsFile: filepath.Join(dir, "grid.pts"),
		},
		Results: ResultsDef{Folder: filepath.Join(dir, "results")},
	}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)
	assert.Equal(t, "office", g.Name())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, grid.LoadedAnnual, g.State())
	assert.True(t, g.HasDirectValues())

	s, err := g.Point(0).CoupledValue(0, "scene", "default")
	require.NoError(t, err)
	assert.Equal(t, 420.0, s.Total)
	assert.Equal(t, 20.0, s.Direct)
}

func TestBuildGridFromManifest(t *testing.T) {
	dir := writeProject(t)
	manifest := filepath.Join(dir, "results.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
results:
  - source: scene
    state: default
    total:
      path: results/scene..default.ill
      has_header: true
`), 0o644))

	cfg := &Config{
		Grid:    GridDef{PointsFile: filepath.Join(dir, "grid.pts")},
		Results: ResultsDef{Manifest: manifest},
	}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)
	assert.Equal(t, grid.LoadedAnnual, g.State())
	assert.False(t, g.HasDirectValues())
}

func TestBuildGridWithoutResults(t *testing.T) {
	dir := writeProject(t)
	cfg := &Config{Grid: GridDef{PointsFile: filepath.Join(dir, "grid.pts")}}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)
	assert.Equal(t, grid.Raw, g.State())
}

func TestBuildGridMissingPointsFile(t *testing.T) {
	cfg := &Config{Grid: GridDef{PointsFile: filepath.Join(t.TempDir(), "nope.pts")}}
	_, err := BuildGrid(cfg)
	require.Error(t, err)
}

func TestScheduleFrom(t *testing.T) {
	occ := ScheduleFrom(&Config{})
	assert.Zero(t, occ.Len())

	occ = ScheduleFrom(&Config{Schedule: ScheduleDef{StartHour: 8, EndHour: 18}})
	assert.Equal(t, 3650, occ.Len())
	assert.True(t, occ.IsOccupied(8))
	assert.False(t, occ.IsOccupied(18))
}

func TestMetricOptionsFrom(t *testing.T) {
	dir := writeProject(t)
	cfg := &Config{
		Grid:    GridDef{PointsFile: filepath.Join(dir, "grid.pts")},
		Results: ResultsDef{Folder: filepath.Join(dir, "results")},
		Metrics: MetricsDef{DAThreshold: 500, TargetDA: 40},
	}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)

	opts, err := MetricOptionsFrom(cfg, g)
	require.NoError(t, err)
	assert.Equal(t, 500.0, opts.DAThreshold)
	assert.Equal(t, 40.0, opts.TargetDA)
	assert.Nil(t, opts.StateIDs)
}

func TestMetricOptionsFromBlindStates(t *testing.T) {
	dir := writeProject(t)
	cfg := &Config{
		Grid:        GridDef{PointsFile: filepath.Join(dir, "grid.pts")},
		Results:     ResultsDef{Folder: filepath.Join(dir, "results")},
		BlindStates: []string{"0"},
	}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)

	opts, err := MetricOptionsFrom(cfg, g)
	require.NoError(t, err)
	require.Len(t, opts.StateIDs, len(g.Hoys()))
	assert.Equal(t, []int{0}, opts.StateIDs[0])

	cfg.BlindStates = []string{"0 1"}
	_, err = MetricOptionsFrom(cfg, g)
	require.Error(t, err)
}

func TestMetricOptionsFromBlindStatesWithoutResults(t *testing.T) {
	dir := writeProject(t)
	cfg := &Config{
		Grid:        GridDef{PointsFile: filepath.Join(dir, "grid.pts")},
		BlindStates: []string{"0"},
	}

	g, err := BuildGrid(cfg)
	require.NoError(t, err)

	_, err = MetricOptionsFrom(cfg, g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results are loaded")
}
