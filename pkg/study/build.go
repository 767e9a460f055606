package study

import (
	"fmt"

	"github.com/ladybug-tools/daylightgrid/pkg/grid"
	"github.com/ladybug-tools/daylightgrid/pkg/metrics"
	"github.com/ladybug-tools/daylightgrid/pkg/results"
)

// BuildGrid assembles the analysis grid a config describes: it reads the
// sensor points file, applies the configured name and window groups, and
// loads results from the manifest or the results folder when one is set.
func BuildGrid(cfg *Config) (*grid.AnalysisGrid, error) {
	endLine := cfg.Grid.EndLine
	if endLine == 0 {
		endLine = -1
	}
	g, err := grid.FromFile(cfg.Grid.PointsFile, cfg.Grid.StartLine, endLine)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	if cfg.Grid.Name != "" || len(cfg.Grid.WindowGroups) > 0 {
		g = grid.New(g.Points(), cfg.Grid.Name, cfg.Grid.WindowGroups)
	}

	sets, err := resultSets(cfg)
	if err != nil {
		return nil, err
	}
	if len(sets) > 0 {
		if err := g.LoadFileSets(sets); err != nil {
			return nil, fmt.Errorf("loading results: %w", err)
		}
	}
	return g, nil
}

func resultSets(cfg *Config) ([]results.FileSet, error) {
	switch {
	case cfg.Results.Manifest != "":
		m, err := results.LoadManifest(cfg.Results.Manifest)
		if err != nil {
			return nil, fmt.Errorf("reading manifest: %w", err)
		}
		return m.Sets, nil
	case cfg.Results.Folder != "":
		sets, err := results.Discover(cfg.Results.Folder)
		if err != nil {
			return nil, fmt.Errorf("scanning results folder: %w", err)
		}
		return sets, nil
	}
	return nil, nil
}

// ScheduleFrom converts the configured occupancy window into an annual
// schedule. An unset schedule returns the zero Schedule, which lets each
// metric fall back to its own default.
func ScheduleFrom(cfg *Config) metrics.Schedule {
	if cfg.Schedule.IsZero() {
		return metrics.Schedule{}
	}
	return metrics.FromWorkdayHours(cfg.Schedule.StartHour, cfg.Schedule.EndHour,
		cfg.Schedule.OffHours, cfg.Schedule.Weekend)
}

// MetricOptionsFrom builds the metric options for a grid, parsing the
// configured blind-state rows against the grid's source schema.
func MetricOptionsFrom(cfg *Config, g *grid.AnalysisGrid) (grid.MetricOptions, error) {
	opts := grid.MetricOptions{
		DAThreshold:  cfg.Metrics.DAThreshold,
		UDIMin:       cfg.Metrics.UDIMin,
		UDIMax:       cfg.Metrics.UDIMax,
		ASEThreshold: cfg.Metrics.ASEThreshold,
		TargetHours:  cfg.Metrics.TargetHours,
		TargetArea:   cfg.Metrics.TargetArea,
		TargetDA:     cfg.Metrics.TargetDA,
		Schedule:     ScheduleFrom(cfg),
	}
	if len(cfg.BlindStates) > 0 {
		if g.Len() == 0 || !g.HasValues() {
			return opts, fmt.Errorf("blind states configured but no results are loaded")
		}
		stateIDs, err := g.Point(0).ParseBlindStates(cfg.BlindStates, len(g.Hoys()))
		if err != nil {
			return opts, fmt.Errorf("parsing blind states: %w", err)
		}
		opts.StateIDs = stateIDs
	}
	return opts, nil
}
