package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ladybug-tools/daylightgrid/pkg/grid"
	"github.com/ladybug-tools/daylightgrid/pkg/study"
	"github.com/ladybug-tools/daylightgrid/pkg/validation"
)

// loadAndValidate loads the study config and runs schema validation.
func loadAndValidate(projectPath string) (*study.Config, *validation.Report, error) {
	cfg, err := study.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading study: %w", err)
	}
	report := validation.ValidateSchema(cfg)
	return cfg, report, nil
}

// loadGrid runs the full pipeline up to a grid with results loaded.
func loadGrid(projectPath string) (*study.Config, *grid.AnalysisGrid, error) {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if !report.Valid {
		printValidationReport(report)
		return nil, nil, fmt.Errorf("study config has validation errors")
	}

	g, err := study.BuildGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, g, nil
}

func runValidate(projectPath string) error {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	report.Merge(validation.ValidateFiles(cfg))
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runMetrics(projectPath string, asJSON bool) error {
	cfg, g, err := loadGrid(projectPath)
	if err != nil {
		return err
	}
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		return err
	}

	res, err := g.AnnualMetrics(opts)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(map[string]any{
			"grid":    g.Name(),
			"results": res,
		})
	}
	printAnnualReport(g, res)
	return nil
}

func runSDA(projectPath string, asJSON bool) error {
	cfg, g, err := loadGrid(projectPath)
	if err != nil {
		return err
	}
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		return err
	}

	res, err := g.SpatialDaylightAutonomy(opts)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(res)
	}
	printSDAReport(g, res, opts)
	return nil
}

func runASE(projectPath string, asJSON bool) error {
	cfg, g, err := loadGrid(projectPath)
	if err != nil {
		return err
	}
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		return err
	}

	res, err := g.AnnualSunlightExposure(opts)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(res)
	}
	printASEReport(g, res, opts)
	return nil
}

func runPoints(projectPath string) error {
	_, g, err := loadGrid(projectPath)
	if err != nil {
		return err
	}
	fmt.Print(g.ToRadString())
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
