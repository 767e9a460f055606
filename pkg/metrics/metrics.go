// Package metrics implements annual daylighting performance metrics over
// hourly illuminance series: daylight autonomy, continuous daylight
// autonomy, useful daylight illuminance, annual sunlight exposure and
// spatial daylight autonomy.
package metrics

import (
	"errors"
	"fmt"
)

// Default thresholds per IES-LM-83-12.
const (
	DefaultDAThreshold  = 300.0
	DefaultUDIMin       = 100.0
	DefaultUDIMax       = 3000.0
	DefaultASEThreshold = 1000.0
	DefaultTargetHours  = 250
	DefaultTargetArea   = 10.0
	DefaultTargetDA     = 50.0
)

// ErrNoOccupiedHours is returned when none of the series hours fall inside
// the occupancy schedule, which leaves the metric undefined.
var ErrNoOccupiedHours = errors.New("no occupied hours in schedule")

// UDI holds the three useful daylight illuminance percentages over occupied
// hours: below the useful band, within it, and above it.
type UDI struct {
	Below  float64 `json:"below"`
	Within float64 `json:"within"`
	Above  float64 `json:"above"`
}

// PointSummary holds all annual metrics for a single analysis point.
type PointSummary struct {
	DA  float64 `json:"da"`
	CDA float64 `json:"cda"`
	UDI UDI     `json:"udi"`
}

// PointExposure is the annual sunlight exposure result for a single point.
type PointExposure struct {
	Passed           bool  `json:"passed"`
	Hours            int   `json:"hours"`
	ProblematicHours []int `json:"problematic_hours,omitempty"`
}

// DaylightAutonomy returns the percentage of occupied hours with illuminance
// at or above threshold.
func DaylightAutonomy(values []float64, hoys []int, threshold float64, occ Schedule) (float64, error) {
	if err := checkSeries(values, hoys); err != nil {
		return 0, err
	}
	met, total := 0, 0
	for i, h := range hoys {
		if !occ.IsOccupied(h) {
			continue
		}
		total++
		if values[i] >= threshold {
			met++
		}
	}
	if total == 0 {
		return 0, ErrNoOccupiedHours
	}
	return 100 * float64(met) / float64(total), nil
}

// ContinuousDaylightAutonomy is the daylight autonomy variant that gives
// partial credit value/threshold for hours below the threshold.
func ContinuousDaylightAutonomy(values []float64, hoys []int, threshold float64, occ Schedule) (float64, error) {
	if err := checkSeries(values, hoys); err != nil {
		return 0, err
	}
	credit, total := 0.0, 0
	for i, h := range hoys {
		if !occ.IsOccupied(h) {
			continue
		}
		total++
		if values[i] >= threshold {
			credit++
		} else {
			credit += values[i] / threshold
		}
	}
	if total == 0 {
		return 0, ErrNoOccupiedHours
	}
	return 100 * credit / float64(total), nil
}

// UsefulDaylightIlluminance returns the percentages of occupied hours below
// udiMin, within [udiMin, udiMax] and above udiMax.
func UsefulDaylightIlluminance(values []float64, hoys []int, udiMin, udiMax float64, occ Schedule) (UDI, error) {
	if err := checkSeries(values, hoys); err != nil {
		return UDI{}, err
	}
	below, within, above, total := 0, 0, 0, 0
	for i, h := range hoys {
		if !occ.IsOccupied(h) {
			continue
		}
		total++
		switch {
		case values[i] < udiMin:
			below++
		case values[i] > udiMax:
			above++
		default:
			within++
		}
	}
	if total == 0 {
		return UDI{}, ErrNoOccupiedHours
	}
	f := 100 / float64(total)
	return UDI{
		Below:  float64(below) * f,
		Within: float64(within) * f,
		Above:  float64(above) * f,
	}, nil
}

// PointAnnualSummary computes DA, cDA and UDI for one point in a single pass
// over the series. The streaming grid path uses this so each row is consumed
// exactly once.
func PointAnnualSummary(values []float64, hoys []int, daThreshold, udiMin, udiMax float64, occ Schedule) (PointSummary, error) {
	if err := checkSeries(values, hoys); err != nil {
		return PointSummary{}, err
	}
	met, below, within, above, total := 0, 0, 0, 0, 0
	credit := 0.0
	for i, h := range hoys {
		if !occ.IsOccupied(h) {
			continue
		}
		total++
		v := values[i]
		if v >= daThreshold {
			met++
			credit++
		} else {
			credit += v / daThreshold
		}
		switch {
		case v < udiMin:
			below++
		case v > udiMax:
			above++
		default:
			within++
		}
	}
	if total == 0 {
		return PointSummary{}, ErrNoOccupiedHours
	}
	f := 100 / float64(total)
	return PointSummary{
		DA:  float64(met) * f,
		CDA: credit * f,
		UDI: UDI{
			Below:  float64(below) * f,
			Within: float64(within) * f,
			Above:  float64(above) * f,
		},
	}, nil
}

// PointSunlightExposure counts occupied hours with direct illuminance above
// threshold. The point passes when the count stays at or below targetHours.
func PointSunlightExposure(direct []float64, hoys []int, threshold float64, targetHours int, occ Schedule) (PointExposure, error) {
	if err := checkSeries(direct, hoys); err != nil {
		return PointExposure{}, err
	}
	var problematic []int
	for i, h := range hoys {
		if !occ.IsOccupied(h) {
			continue
		}
		if direct[i] > threshold {
			problematic = append(problematic, h)
		}
	}
	return PointExposure{
		Passed:           len(problematic) <= targetHours,
		Hours:            len(problematic),
		ProblematicHours: problematic,
	}, nil
}

func checkSeries(values []float64, hoys []int) error {
	if len(values) != len(hoys) {
		return fmt.Errorf("length of values [%d] is not equal to length of hours [%d]",
			len(values), len(hoys))
	}
	return nil
}
