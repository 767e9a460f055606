package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ladybug-tools/daylightgrid/pkg/study"
)

func validConfig() *study.Config {
	return &study.Config{
		SpecVersion: "0.1.0",
		Grid: study.GridDef{
			Name:         "office_floor_2",
			PointsFile:   "grid.pts",
			WindowGroups: []string{"south_window", "skylight"},
		},
		Results: study.ResultsDef{
			Folder: "results",
		},
		Schedule: study.ScheduleDef{
			StartHour: 8,
			EndHour:   18,
		},
		Metrics: study.MetricsDef{
			DAThreshold:  300,
			UDIMin:       100,
			UDIMax:       3000,
			ASEThreshold: 1000,
			TargetHours:  250,
			TargetArea:   10,
			TargetDA:     50,
		},
	}
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validConfig())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateSchemaMissingPointsFile(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.PointsFile = ""
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for missing points_file")
	}
	assertHasError(t, r, "grid.points_file")
}

func TestValidateSchemaLineRange(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.StartLine = 10
	cfg.Grid.EndLine = 5
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for end_line before start_line")
	}
	assertHasError(t, r, "grid.end_line")
}

func TestValidateSchemaDuplicateWindowGroup(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.WindowGroups = []string{"south_window", "south_window"}
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for duplicate window group")
	}
	assertHasError(t, r, "grid.window_groups[1]")
}

func TestValidateSchemaNoResults(t *testing.T) {
	cfg := validConfig()
	cfg.Results = study.ResultsDef{}
	r := ValidateSchema(cfg)
	if !r.Valid {
		t.Error("missing results location should only warn")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for missing results location")
	}
}

func TestValidateSchemaScheduleHours(t *testing.T) {
	cfg := validConfig()
	cfg.Schedule.StartHour = 18
	cfg.Schedule.EndHour = 8
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for inverted schedule window")
	}
	assertHasError(t, r, "schedule.end_hour")
}

func TestValidateSchemaWeekendDay(t *testing.T) {
	cfg := validConfig()
	cfg.Schedule.Weekend = []int{6, 8}
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for weekend day out of range")
	}
	assertHasError(t, r, "schedule.weekend[1]")
}

func TestValidateSchemaUDIBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.UDIMin = 3000
	cfg.Metrics.UDIMax = 100
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for udi_min above udi_max")
	}
	assertHasError(t, r, "metrics.udi_min")
}

func TestValidateSchemaTargetArea(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.TargetArea = 150
	r := ValidateSchema(cfg)
	if r.Valid {
		t.Error("expected invalid report for target_area above 100")
	}
	assertHasError(t, r, "metrics.target_area")
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	pts := filepath.Join(dir, "grid.pts")
	if err := os.WriteFile(pts, []byte("0 0 0 0 0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Grid.PointsFile = pts
	cfg.Results.Folder = dir

	r := ValidateFiles(cfg)
	if !r.Valid {
		t.Errorf("expected valid report, got errors: %v", r.Errors)
	}

	cfg.Results.Folder = filepath.Join(dir, "missing")
	r = ValidateFiles(cfg)
	if r.Valid {
		t.Error("expected invalid report for missing results folder")
	}
	assertHasError(t, r, "results.folder")
}

func assertHasError(t *testing.T, r *Report, configPath string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.ConfigPath == configPath {
			return
		}
	}
	t.Errorf("expected error with config_path %q, got errors: %v", configPath, r.Errors)
}
