package main

import (
	"fmt"

	"github.com/ladybug-tools/daylightgrid/pkg/grid"
	"github.com/ladybug-tools/daylightgrid/pkg/metrics"
	"github.com/ladybug-tools/daylightgrid/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.ConfigPath != "" {
				fmt.Printf("    -> %s = %v\n", e.ConfigPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.ConfigPath != "" {
				fmt.Printf("    -> %s = %v\n", w.ConfigPath, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printAnnualReport(g *grid.AnalysisGrid, res *metrics.AnnualResults) {
	fmt.Printf("Annual Daylight Metrics: %s\n", g.Name())
	fmt.Println("=========================")
	fmt.Println()

	fmt.Printf("%-8s %8s %8s %10s %10s %10s\n",
		"Point", "DA", "cDA", "UDI<", "UDI", "UDI>")
	fmt.Printf("%-8s %8s %8s %10s %10s %10s\n",
		"--------", "--------", "--------", "----------", "----------", "----------")
	for i := range res.DA {
		fmt.Printf("%-8d %7.1f%% %7.1f%% %9.1f%% %9.1f%% %9.1f%%\n",
			i, res.DA[i], res.CDA[i],
			res.UDI[i].Below, res.UDI[i].Within, res.UDI[i].Above)
	}

	fmt.Println()
	printSummary("DA", metrics.Summarize(res.DA))
	printSummary("cDA", metrics.Summarize(res.CDA))
}

func printSummary(label string, s metrics.Summary) {
	fmt.Printf("%-4s mean %.1f%%  median %.1f%%  min %.1f%%  max %.1f%%\n",
		label, s.Mean, s.Median, s.Min, s.Max)
}

func printSDAReport(g *grid.AnalysisGrid, res *metrics.SDAResult, opts grid.MetricOptions) {
	fmt.Printf("Spatial Daylight Autonomy: %s\n", g.Name())
	fmt.Println("===========================")
	fmt.Println()
	fmt.Printf("  sDA:                 %.1f%%\n", res.SDA)
	fmt.Printf("  Points evaluated:    %d\n", len(res.DA))
	fmt.Printf("  Problematic points:  %d\n", len(res.Problematic))
	if len(res.Problematic) > 0 {
		fmt.Printf("  Point indexes:       %v\n", res.Problematic)
	}
	fmt.Println()
	printThreshold("DA threshold", opts.DAThreshold, metrics.DefaultDAThreshold, "lux")
	printThreshold("Target DA", opts.TargetDA, metrics.DefaultTargetDA, "%")
}

func printASEReport(g *grid.AnalysisGrid, res *metrics.ASEResult, opts grid.MetricOptions) {
	fmt.Printf("Annual Sunlight Exposure: %s\n", g.Name())
	fmt.Println("==========================")
	fmt.Println()
	if res.Passed {
		fmt.Println("  Result: PASSED")
	} else {
		fmt.Println("  Result: FAILED")
	}
	fmt.Printf("  Problematic area:    %.1f%%\n", res.PercentProblematic)
	fmt.Printf("  Problematic points:  %d\n", len(res.Problematic))
	if len(res.Problematic) > 0 {
		fmt.Printf("  Point indexes:       %v\n", res.Problematic)
	}
	fmt.Println()
	printThreshold("Sun threshold", opts.ASEThreshold, metrics.DefaultASEThreshold, "lux")
	printThreshold("Target hours", float64(opts.TargetHours), float64(metrics.DefaultTargetHours), "h")
	printThreshold("Target area", opts.TargetArea, metrics.DefaultTargetArea, "%")
}

func printThreshold(label string, v, def float64, unit string) {
	if v <= 0 {
		v = def
	}
	fmt.Printf("  %-19s  %.0f %s\n", label+":", v, unit)
}
