package grid

import (
	"fmt"

	"github.com/ladybug-tools/daylightgrid/pkg/metrics"
	"github.com/ladybug-tools/daylightgrid/pkg/results"
)

// MetricOptions parameterizes the annual metric operations. Zero values
// fall back to the IES-LM-83-12 defaults; a zero-length schedule falls back
// to the metric's default occupancy.
type MetricOptions struct {
	DAThreshold  float64
	UDIMin       float64
	UDIMax       float64
	ASEThreshold float64
	TargetHours  int
	TargetArea   float64
	TargetDA     float64
	// StateIDs is the per-hour blind-state table; nil selects state 0 for
	// every source. Ignored by the streaming path, which reads merged
	// single-state files.
	StateIDs [][]int
	Schedule metrics.Schedule
}

func (o MetricOptions) withDefaults(defaultSchedule metrics.Schedule) MetricOptions {
	if o.DAThreshold <= 0 {
		o.DAThreshold = metrics.DefaultDAThreshold
	}
	if o.UDIMin <= 0 {
		o.UDIMin = metrics.DefaultUDIMin
	}
	if o.UDIMax <= 0 {
		o.UDIMax = metrics.DefaultUDIMax
	}
	if o.ASEThreshold <= 0 {
		o.ASEThreshold = metrics.DefaultASEThreshold
	}
	if o.TargetHours <= 0 {
		o.TargetHours = metrics.DefaultTargetHours
	}
	if o.TargetArea <= 0 {
		o.TargetArea = metrics.DefaultTargetArea
	}
	if o.TargetDA <= 0 {
		o.TargetDA = metrics.DefaultTargetDA
	}
	if o.Schedule.Len() == 0 {
		o.Schedule = defaultSchedule
	}
	return o
}

// memorySource adapts resident point values to metrics.PointSource. direct
// selects the direct channel instead of the combined total.
type memorySource struct {
	g        *AnalysisGrid
	stateIDs [][]int
	direct   bool
}

func (s memorySource) EachPoint(fn func(index int, hoys []int, values []float64) error) error {
	hoys := s.g.Hoys()
	for i, p := range s.g.points {
		samples, err := p.CombinedValuesByID(hoys, s.stateIDs)
		if err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		values := make([]float64, len(samples))
		for j, smp := range samples {
			if s.direct {
				values[j] = smp.Direct
			} else {
				values[j] = smp.Total
			}
		}
		if err := fn(i, hoys, values); err != nil {
			return err
		}
	}
	return nil
}

// fileSource adapts a registered result file to metrics.PointSource,
// reading one row per point without materializing the annual table.
type fileSource struct {
	fd     results.FileDescriptor
	points int
}

func (s fileSource) EachPoint(fn func(index int, hoys []int, values []float64) error) error {
	opts := results.Options{ExpectPoints: s.points, ExpectHours: len(s.fd.Hoys)}
	return results.EachRow(s.fd, opts, func(row int, values []float64) error {
		if row >= s.points {
			return nil
		}
		return fn(row, rowHoys(s.fd, values), values)
	})
}

// pointSource picks the metric input path: resident values when loaded,
// otherwise a stream over the single registered merged result file. Both
// paths feed the same metric code.
func (g *AnalysisGrid) pointSource(stateIDs [][]int, direct bool) (metrics.PointSource, error) {
	files := g.totalFiles
	channel := "total"
	if direct {
		files = g.directFiles
		channel = "direct"
	}

	if g.HasValues() {
		if direct && !g.HasDirectValues() {
			return nil, fmt.Errorf("direct values are not loaded for this grid")
		}
		return memorySource{g: g, stateIDs: stateIDs, direct: direct}, nil
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s values are assigned to this analysis grid", channel)
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("streaming metrics need a single merged %s result file, got %d",
			channel, len(files))
	}
	if files[0].Mode != results.ModeRaw {
		return nil, fmt.Errorf("annual metrics can only be calculated from raw illuminance results")
	}
	return fileSource{fd: files[0], points: len(g.points)}, nil
}

// AnnualMetrics computes DA, cDA and UDI for every point, from resident
// values or by streaming the registered result file.
func (g *AnalysisGrid) AnnualMetrics(opts MetricOptions) (*metrics.AnnualResults, error) {
	opts = opts.withDefaults(metrics.EightToSix())
	src, err := g.pointSource(opts.StateIDs, false)
	if err != nil {
		return nil, err
	}
	return metrics.Annual(src, opts.DAThreshold, opts.UDIMin, opts.UDIMax, opts.Schedule)
}

// SpatialDaylightAutonomy computes per-point DA and the percentage of
// points meeting the target DA.
func (g *AnalysisGrid) SpatialDaylightAutonomy(opts MetricOptions) (*metrics.SDAResult, error) {
	opts = opts.withDefaults(metrics.EightToSix())
	src, err := g.pointSource(opts.StateIDs, false)
	if err != nil {
		return nil, err
	}
	return metrics.SpatialDaylightAutonomy(src, opts.DAThreshold, opts.TargetDA, opts.Schedule)
}

// AnnualSunlightExposure runs the direct-sun exposure check per point and
// derives the grid-level pass/fail. The default schedule counts every hour,
// matching how ASE is reported for unshaded direct sun.
func (g *AnalysisGrid) AnnualSunlightExposure(opts MetricOptions) (*metrics.ASEResult, error) {
	opts = opts.withDefaults(metrics.AllHours())
	src, err := g.pointSource(opts.StateIDs, true)
	if err != nil {
		return nil, err
	}
	return metrics.AnnualSunlightExposure(src, opts.ASEThreshold, opts.TargetHours, opts.TargetArea, opts.Schedule)
}
