package metrics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AnnualResults holds per-point annual metrics for a whole grid, in point
// order.
type AnnualResults struct {
	DA  []float64 `json:"da"`
	CDA []float64 `json:"cda"`
	UDI []UDI     `json:"udi"`
}

// SDAResult is the spatial daylight autonomy result for a grid.
type SDAResult struct {
	SDA         float64   `json:"sda"`
	DA          []float64 `json:"da"`
	Problematic []int     `json:"problematic_points"`
}

// ASEResult is the annual sunlight exposure result for a grid.
type ASEResult struct {
	Passed             bool    `json:"passed"`
	PercentProblematic float64 `json:"percent_problematic"`
	Hours              []int   `json:"hours"`
	Problematic        []int   `json:"problematic_points"`
	ProblematicHours   [][]int `json:"problematic_hours,omitempty"`
}

// Annual computes DA, cDA and UDI for every point the source yields.
func Annual(src PointSource, daThreshold, udiMin, udiMax float64, occ Schedule) (*AnnualResults, error) {
	res := &AnnualResults{}
	err := src.EachPoint(func(_ int, hoys []int, values []float64) error {
		s, err := PointAnnualSummary(values, hoys, daThreshold, udiMin, udiMax, occ)
		if err != nil {
			return err
		}
		res.DA = append(res.DA, s.DA)
		res.CDA = append(res.CDA, s.CDA)
		res.UDI = append(res.UDI, s.UDI)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SpatialDaylightAutonomy computes DA per point and reports the percentage
// of points meeting targetDA. Raising targetDA can only shrink the result.
func SpatialDaylightAutonomy(src PointSource, daThreshold, targetDA float64, occ Schedule) (*SDAResult, error) {
	res := &SDAResult{}
	err := src.EachPoint(func(index int, hoys []int, values []float64) error {
		da, err := DaylightAutonomy(values, hoys, daThreshold, occ)
		if err != nil {
			return err
		}
		res.DA = append(res.DA, da)
		if da < targetDA {
			res.Problematic = append(res.Problematic, index)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(res.DA) == 0 {
		return res, nil
	}
	res.SDA = 100 * (1 - float64(len(res.Problematic))/float64(len(res.DA)))
	return res, nil
}

// AnnualSunlightExposure runs the per-point direct sun exposure check over
// the source and derives the grid pass/fail. An empty grid reports 0%
// problematic area and passes.
func AnnualSunlightExposure(src PointSource, threshold float64, targetHours int, targetArea float64, occ Schedule) (*ASEResult, error) {
	res := &ASEResult{}
	pointCount := 0
	err := src.EachPoint(func(index int, hoys []int, direct []float64) error {
		pointCount++
		e, err := PointSunlightExposure(direct, hoys, threshold, targetHours, occ)
		if err != nil {
			return err
		}
		res.Hours = append(res.Hours, e.Hours)
		if !e.Passed {
			res.Problematic = append(res.Problematic, index)
			res.ProblematicHours = append(res.ProblematicHours, e.ProblematicHours)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if pointCount > 0 {
		res.PercentProblematic = 100 * float64(len(res.Problematic)) / float64(pointCount)
	}
	res.Passed = res.PercentProblematic < targetArea
	return res, nil
}

// Summary holds grid-wide statistics over per-point DA values.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize reduces a per-point metric series to grid-wide statistics.
func Summarize(perPoint []float64) Summary {
	if len(perPoint) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), perPoint...)
	sort.Float64s(sorted)
	return Summary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}
