package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaylightAutonomy(t *testing.T) {
	values := []float64{500, 200, 50, 3500}
	hoys := []int{0, 1, 2, 3}

	da, err := DaylightAutonomy(values, hoys, 300, AllHours())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, da, 1e-9)
}

func TestDaylightAutonomyScheduleFilter(t *testing.T) {
	values := []float64{500, 200, 50, 3500}
	hoys := []int{0, 1, 2, 3}

	// Only the first two hours are occupied.
	da, err := DaylightAutonomy(values, hoys, 300, FromHours([]int{0, 1}))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, da, 1e-9)

	// Threshold hit exactly counts as met.
	da, err = DaylightAutonomy([]float64{300}, []int{0}, 300, AllHours())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, da, 1e-9)
}

func TestDaylightAutonomyNoOccupiedHours(t *testing.T) {
	_, err := DaylightAutonomy([]float64{500}, []int{0}, 300, FromHours([]int{10}))
	require.ErrorIs(t, err, ErrNoOccupiedHours)
}

func TestDaylightAutonomyLengthMismatch(t *testing.T) {
	_, err := DaylightAutonomy([]float64{500, 200}, []int{0}, 300, AllHours())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not equal to length of hours")
}

func TestContinuousDaylightAutonomy(t *testing.T) {
	values := []float64{500, 200, 50, 3500}
	hoys := []int{0, 1, 2, 3}

	cda, err := ContinuousDaylightAutonomy(values, hoys, 300, AllHours())
	require.NoError(t, err)
	// 1 + 200/300 + 50/300 + 1 hours of credit over 4 hours.
	want := 100 * (2 + 250.0/300.0) / 4
	assert.InDelta(t, want, cda, 1e-9)
}

func TestUsefulDaylightIlluminance(t *testing.T) {
	values := []float64{500, 200, 50, 3500}
	hoys := []int{0, 1, 2, 3}

	udi, err := UsefulDaylightIlluminance(values, hoys, 100, 3000, AllHours())
	require.NoError(t, err)
	assert.InDelta(t, 25.0, udi.Below, 1e-9)
	assert.InDelta(t, 50.0, udi.Within, 1e-9)
	assert.InDelta(t, 25.0, udi.Above, 1e-9)
}

func TestUsefulDaylightIlluminanceBandEdges(t *testing.T) {
	// Values on the band edges count as within.
	udi, err := UsefulDaylightIlluminance([]float64{100, 3000}, []int{0, 1}, 100, 3000, AllHours())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, udi.Within, 1e-9)
}

func TestPointAnnualSummaryMatchesIndividualMetrics(t *testing.T) {
	values := []float64{500, 200, 50, 3500, 0, 1200}
	hoys := []int{8, 9, 10, 11, 12, 13}
	occ := FromHours([]int{8, 9, 10, 11, 13})

	s, err := PointAnnualSummary(values, hoys, 300, 100, 3000, occ)
	require.NoError(t, err)

	da, err := DaylightAutonomy(values, hoys, 300, occ)
	require.NoError(t, err)
	cda, err := ContinuousDaylightAutonomy(values, hoys, 300, occ)
	require.NoError(t, err)
	udi, err := UsefulDaylightIlluminance(values, hoys, 100, 3000, occ)
	require.NoError(t, err)

	assert.InDelta(t, da, s.DA, 1e-9)
	assert.InDelta(t, cda, s.CDA, 1e-9)
	assert.InDelta(t, udi.Below, s.UDI.Below, 1e-9)
	assert.InDelta(t, udi.Within, s.UDI.Within, 1e-9)
	assert.InDelta(t, udi.Above, s.UDI.Above, 1e-9)
}

func TestPointSunlightExposure(t *testing.T) {
	direct := []float64{0, 1200, 1000, 1500}
	hoys := []int{8, 9, 10, 11}

	e, err := PointSunlightExposure(direct, hoys, 1000, 1, AllHours())
	require.NoError(t, err)
	// 1000 exactly is not above the threshold.
	assert.Equal(t, 2, e.Hours)
	assert.Equal(t, []int{9, 11}, e.ProblematicHours)
	assert.False(t, e.Passed)

	e, err = PointSunlightExposure(direct, hoys, 1000, 2, AllHours())
	require.NoError(t, err)
	assert.True(t, e.Passed)
}

func TestPointSunlightExposureUnoccupiedHoursIgnored(t *testing.T) {
	direct := []float64{5000, 5000}
	hoys := []int{2, 12}

	e, err := PointSunlightExposure(direct, hoys, 1000, 0, EightToSix())
	require.NoError(t, err)
	assert.Equal(t, 1, e.Hours)
	assert.Equal(t, []int{12}, e.ProblematicHours)
}

func TestScheduleEightToSix(t *testing.T) {
	occ := EightToSix()
	assert.Equal(t, 3650, occ.Len())
	assert.True(t, occ.IsOccupied(8))
	assert.True(t, occ.IsOccupied(17))
	assert.False(t, occ.IsOccupied(18))
	assert.False(t, occ.IsOccupied(7))
	// Same window on the second day.
	assert.True(t, occ.IsOccupied(24+8))
}

func TestScheduleWorkdayWithBreakAndWeekend(t *testing.T) {
	occ := FromWorkdayHours(9, 17, []int{12}, []int{6, 7})

	// A year of 365 days starting on a Monday has 104 weekend days.
	assert.Equal(t, (365-104)*7, occ.Len())

	// Monday 9am is occupied, the lunch break is not.
	assert.True(t, occ.IsOccupied(9))
	assert.False(t, occ.IsOccupied(12))

	// Day 6 of the year is a Saturday.
	assert.False(t, occ.IsOccupied(5*24+10))
}

func TestScheduleFromValues(t *testing.T) {
	occ := FromValues([]float64{0, 1, 0, 0.5}, []int{0, 1, 2, 3})
	assert.Equal(t, 2, occ.Len())
	assert.True(t, occ.IsOccupied(1))
	assert.True(t, occ.IsOccupied(3))
	assert.False(t, occ.IsOccupied(0))
}

func TestScheduleOccupiedCount(t *testing.T) {
	occ := FromHours([]int{1, 3, 5})
	assert.Equal(t, 2, occ.OccupiedCount([]int{1, 2, 3}))
}
