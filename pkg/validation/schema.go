package validation

import (
	"fmt"
	"os"

	"github.com/ladybug-tools/daylightgrid/pkg/study"
)

// ValidateSchema performs schema validation on a parsed study config. It
// checks structural correctness before any file is read.
func ValidateSchema(cfg *study.Config) *Report {
	r := NewReport()

	validateGrid(cfg, r)
	validateResults(cfg, r)
	validateSchedule(cfg, r)
	validateMetrics(cfg, r)

	return r
}

func validateGrid(cfg *study.Config, r *Report) {
	if cfg.Grid.Name == "" {
		r.AddWarning(Result{
			Level:      LevelSchema,
			Message:    "grid.name is empty; a default name will be used",
			ConfigPath: "grid.name",
		})
	}
	if cfg.Grid.PointsFile == "" {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    "grid.points_file is required",
			ConfigPath: "grid.points_file",
			Expected:   "path to a sensor points file",
		})
	}
	if cfg.Grid.EndLine != 0 && cfg.Grid.EndLine < cfg.Grid.StartLine {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid.end_line must not precede grid.start_line",
			ConfigPath:  "grid.end_line",
			ActualValue: cfg.Grid.EndLine,
			Expected:    fmt.Sprintf(">= %d", cfg.Grid.StartLine),
		})
	}
	seen := map[string]bool{}
	for i, wg := range cfg.Grid.WindowGroups {
		if seen[wg] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("grid.window_groups[%d]: duplicate window group %q", i, wg),
				ConfigPath:  fmt.Sprintf("grid.window_groups[%d]", i),
				ActualValue: wg,
			})
		}
		seen[wg] = true
	}
}

func validateResults(cfg *study.Config, r *Report) {
	if cfg.Results.Manifest == "" && cfg.Results.Folder == "" {
		r.AddWarning(Result{
			Level:      LevelSchema,
			Message:    "no results manifest or folder configured; metrics will need files registered at runtime",
			ConfigPath: "results",
		})
		return
	}
	if cfg.Results.Manifest != "" && cfg.Results.Folder != "" {
		r.AddWarning(Result{
			Level:      LevelSchema,
			Message:    "both results.manifest and results.folder are set; the manifest takes precedence",
			ConfigPath: "results",
		})
	}
}

func validateSchedule(cfg *study.Config, r *Report) {
	s := cfg.Schedule
	if s.IsZero() {
		return
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "schedule.start_hour must be between 0 and 23",
			ConfigPath:  "schedule.start_hour",
			ActualValue: s.StartHour,
			Expected:    "0-23",
		})
	}
	if s.EndHour <= s.StartHour || s.EndHour > 24 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "schedule.end_hour must be after start_hour and at most 24",
			ConfigPath:  "schedule.end_hour",
			ActualValue: s.EndHour,
			Expected:    fmt.Sprintf("%d-24", s.StartHour+1),
		})
	}
	for i, h := range s.OffHours {
		if h < s.StartHour || h >= s.EndHour {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("schedule.off_hours[%d] (%d) falls outside the occupied window", i, h),
				ConfigPath:  fmt.Sprintf("schedule.off_hours[%d]", i),
				ActualValue: h,
			})
		}
	}
	for i, d := range s.Weekend {
		if d < 1 || d > 7 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("schedule.weekend[%d] must be a weekday number 1-7", i),
				ConfigPath:  fmt.Sprintf("schedule.weekend[%d]", i),
				ActualValue: d,
				Expected:    "1 (Monday) - 7 (Sunday)",
			})
		}
	}
}

func validateMetrics(cfg *study.Config, r *Report) {
	m := cfg.Metrics
	if m.DAThreshold < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "metrics.da_threshold must be non-negative",
			ConfigPath:  "metrics.da_threshold",
			ActualValue: m.DAThreshold,
			Expected:    ">= 0",
		})
	}
	if m.UDIMin != 0 && m.UDIMax != 0 && m.UDIMin >= m.UDIMax {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("metrics.udi_min (%.0f) must be below metrics.udi_max (%.0f)", m.UDIMin, m.UDIMax),
			ConfigPath:  "metrics.udi_min",
			ActualValue: m.UDIMin,
			Expected:    fmt.Sprintf("< %.0f", m.UDIMax),
		})
	}
	if m.TargetArea < 0 || m.TargetArea > 100 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "metrics.target_area is a percentage of floor area",
			ConfigPath:  "metrics.target_area",
			ActualValue: m.TargetArea,
			Expected:    "0-100",
		})
	}
	if m.TargetDA < 0 || m.TargetDA > 100 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "metrics.target_da is a percentage of occupied hours",
			ConfigPath:  "metrics.target_da",
			ActualValue: m.TargetDA,
			Expected:    "0-100",
		})
	}
	if m.TargetHours < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "metrics.target_hours must be non-negative",
			ConfigPath:  "metrics.target_hours",
			ActualValue: m.TargetHours,
			Expected:    ">= 0",
		})
	}
}

// ValidateFiles performs results-level validation: the configured points
// file and result locations must exist on disk.
func ValidateFiles(cfg *study.Config) *Report {
	r := NewReport()

	if cfg.Grid.PointsFile != "" {
		if _, err := os.Stat(cfg.Grid.PointsFile); err != nil {
			r.AddError(Result{
				Level:       LevelResults,
				Message:     fmt.Sprintf("points file not found: %s", cfg.Grid.PointsFile),
				ConfigPath:  "grid.points_file",
				ActualValue: cfg.Grid.PointsFile,
			})
		}
	}
	if cfg.Results.Manifest != "" {
		if _, err := os.Stat(cfg.Results.Manifest); err != nil {
			r.AddError(Result{
				Level:       LevelResults,
				Message:     fmt.Sprintf("results manifest not found: %s", cfg.Results.Manifest),
				ConfigPath:  "results.manifest",
				ActualValue: cfg.Results.Manifest,
			})
		}
	}
	if cfg.Results.Folder != "" {
		info, err := os.Stat(cfg.Results.Folder)
		if err != nil || !info.IsDir() {
			r.AddError(Result{
				Level:       LevelResults,
				Message:     fmt.Sprintf("results folder not found: %s", cfg.Results.Folder),
				ConfigPath:  "results.folder",
				ActualValue: cfg.Results.Folder,
			})
		}
	}
	return r
}
