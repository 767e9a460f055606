// Package grid stores per-point, per-source, per-state hourly results from a
// daylight simulation and reconstructs the illuminance a point receives
// under an arbitrary combination of source states.
package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ladybug-tools/daylightgrid/pkg/geo"
	"github.com/ladybug-tools/daylightgrid/pkg/results"
)

// DefaultSource is the source name used by single-phase studies that have
// no independently controllable light sources.
const DefaultSource = "scene"

// DefaultState is the state name for sources with no dynamic states.
const DefaultState = "default"

// ExcludedState is the reserved state id that removes a source from a
// combination query.
const ExcludedState = -1

// Source is one independently controllable light contributor, usually a
// window group. Ids are assigned in insertion order on first use and never
// change; the index of a state name in States is its state id.
type Source struct {
	Name   string   `json:"name"`
	ID     int      `json:"id"`
	States []string `json:"states"`
}

// StateID returns the id for a state name, or -1 when unknown.
func (s *Source) StateID(state string) int {
	for i, name := range s.States {
		if name == state {
			return i
		}
	}
	return -1
}

// Sample is one hour's pair of total and direct values. Direct is only
// meaningful when HasDirect is set; studies that compute illuminance without
// an irradiance split load totals only.
type Sample struct {
	Total     float64
	Direct    float64
	HasDirect bool
}

// ValueMatrix is an append-only, sparse-by-hour store of samples for one
// (source, state) pair, keyed by hour of year.
type ValueMatrix map[int]Sample

// AnalysisPoint is a single daylight sensor: a location, a direction and
// the hourly results loaded for every state of every source that reaches
// it. Points are exclusively owned by one AnalysisGrid and are not safe for
// concurrent mutation.
type AnalysisPoint struct {
	Location  geo.Point3
	Direction geo.Point3

	sources      []*Source
	index        map[string]int
	values       [][]ValueMatrix // indexed by source id, then state id
	directLoaded bool
}

// NewAnalysisPoint creates a point with no sources or values.
func NewAnalysisPoint(location, direction geo.Point3) *AnalysisPoint {
	if direction.IsZero() {
		direction = geo.Up
	}
	return &AnalysisPoint{
		Location:  location,
		Direction: direction,
		index:     map[string]int{},
	}
}

// ensure registers the source and state on first use and returns their ids.
// Empty names fall back to the defaults.
func (ap *AnalysisPoint) ensure(source, state string) (sid, stateID int) {
	if source == "" {
		source = DefaultSource
	}
	if state == "" {
		state = DefaultState
	}

	sid, ok := ap.index[source]
	if !ok {
		sid = len(ap.sources)
		ap.sources = append(ap.sources, &Source{Name: source, ID: sid})
		ap.index[source] = sid
		ap.values = append(ap.values, nil)
	}

	src := ap.sources[sid]
	stateID = src.StateID(state)
	if stateID < 0 {
		stateID = len(src.States)
		src.States = append(src.States, state)
		ap.values[sid] = append(ap.values[sid], ValueMatrix{})
	}
	return sid, stateID
}

// Sources returns the registered sources in id order.
func (ap *AnalysisPoint) Sources() []*Source {
	return ap.sources
}

// SourceID resolves a source name to its id.
func (ap *AnalysisPoint) SourceID(source string) (int, error) {
	if source == "" {
		source = DefaultSource
	}
	sid, ok := ap.index[source]
	if !ok {
		return 0, fmt.Errorf("unknown source %q", source)
	}
	return sid, nil
}

// StateID resolves a state name for a source to its id.
func (ap *AnalysisPoint) StateID(source, state string) (int, error) {
	sid, err := ap.SourceID(source)
	if err != nil {
		return 0, err
	}
	if state == "" {
		state = DefaultState
	}
	id := ap.sources[sid].StateID(state)
	if id < 0 {
		return 0, fmt.Errorf("unknown state %q for source %q", state, ap.sources[sid].Name)
	}
	return id, nil
}

// HasValues reports whether any results are loaded.
func (ap *AnalysisPoint) HasValues() bool {
	return len(ap.values) != 0
}

// HasDirectValues reports whether direct values were ever loaded. Some
// study types only produce totals.
func (ap *AnalysisPoint) HasDirectValues() bool {
	return ap.directLoaded
}

// Hoys returns the sorted hours of the year with loaded results, taken from
// the first source and state.
func (ap *AnalysisPoint) Hoys() []int {
	if !ap.HasValues() || len(ap.values[0]) == 0 {
		return nil
	}
	hoys := make([]int, 0, len(ap.values[0][0]))
	for h := range ap.values[0][0] {
		hoys = append(hoys, h)
	}
	sort.Ints(hoys)
	return hoys
}

// SetValue writes a single total (or direct) value for an hour, creating
// the source and state on first use.
func (ap *AnalysisPoint) SetValue(value float64, hoy int, source, state string, isDirect bool) {
	sid, stateID := ap.ensure(source, state)
	ap.write(sid, stateID, hoy, value, isDirect)
}

// SetValues writes a series of total (or direct) values. Lengths of values
// and hoys must match.
func (ap *AnalysisPoint) SetValues(values []float64, hoys []int, source, state string, isDirect bool) error {
	if len(values) != len(hoys) {
		return fmt.Errorf("length of values [%d] is not equal to length of hours [%d]",
			len(values), len(hoys))
	}
	sid, stateID := ap.ensure(source, state)
	for i, hoy := range hoys {
		ap.write(sid, stateID, hoy, values[i], isDirect)
	}
	return nil
}

func (ap *AnalysisPoint) write(sid, stateID, hoy int, value float64, isDirect bool) {
	m := ap.values[sid][stateID]
	s := m[hoy]
	if isDirect {
		s.Direct = value
		s.HasDirect = true
		ap.directLoaded = true
	} else {
		s.Total = value
	}
	m[hoy] = s
}

// SetCoupledValue writes a (total, direct) pair atomically for one hour.
func (ap *AnalysisPoint) SetCoupledValue(total, direct float64, hoy int, source, state string) {
	sid, stateID := ap.ensure(source, state)
	ap.values[sid][stateID][hoy] = Sample{Total: total, Direct: direct, HasDirect: true}
	ap.directLoaded = true
}

// SetCoupledValues writes (total, direct) pairs for a series of hours. Each
// row must hold exactly two values.
func (ap *AnalysisPoint) SetCoupledValues(values [][]float64, hoys []int, source, state string) error {
	if len(values) != len(hoys) {
		return fmt.Errorf("length of values [%d] is not equal to length of hours [%d]",
			len(values), len(hoys))
	}
	sid, stateID := ap.ensure(source, state)
	for i, hoy := range hoys {
		if len(values[i]) != 2 {
			return &results.MalformedRowError{
				Row: i,
				Err: fmt.Errorf("coupled value must be a (total, direct) pair, got %d values", len(values[i])),
			}
		}
		ap.values[sid][stateID][hoy] = Sample{
			Total:     values[i][0],
			Direct:    values[i][1],
			HasDirect: true,
		}
	}
	ap.directLoaded = true
	return nil
}

// sample fetches the stored sample for ids, failing with MissingHourError
// when the hour was never loaded.
func (ap *AnalysisPoint) sample(sid, stateID, hoy int) (Sample, error) {
	s, ok := ap.values[sid][stateID][hoy]
	if !ok {
		src := ap.sources[sid]
		return Sample{}, &MissingHourError{
			Hoy: hoy, Source: src.Name, State: src.States[stateID],
		}
	}
	return s, nil
}

// Value returns the total value for an hour.
func (ap *AnalysisPoint) Value(hoy int, source, state string) (float64, error) {
	s, err := ap.coupled(hoy, source, state)
	if err != nil {
		return 0, err
	}
	return s.Total, nil
}

// DirectValue returns the direct value for an hour.
func (ap *AnalysisPoint) DirectValue(hoy int, source, state string) (float64, error) {
	s, err := ap.coupled(hoy, source, state)
	if err != nil {
		return 0, err
	}
	return s.Direct, nil
}

// CoupledValue returns the stored (total, direct) sample for an hour.
func (ap *AnalysisPoint) CoupledValue(hoy int, source, state string) (Sample, error) {
	return ap.coupled(hoy, source, state)
}

func (ap *AnalysisPoint) coupled(hoy int, source, state string) (Sample, error) {
	sid, err := ap.SourceID(source)
	if err != nil {
		return Sample{}, err
	}
	stateID, err := ap.StateID(source, state)
	if err != nil {
		return Sample{}, err
	}
	return ap.sample(sid, stateID, hoy)
}

// CombinedValueByID sums the contribution of every source for one hour.
// stateIDs holds one state id per source in source-id order; ExcludedState
// removes that source from the sum. A nil stateIDs selects state 0 for
// every source.
func (ap *AnalysisPoint) CombinedValueByID(hoy int, stateIDs []int) (Sample, error) {
	if stateIDs == nil {
		stateIDs = make([]int, len(ap.sources))
	}
	if len(stateIDs) != len(ap.sources) {
		return Sample{}, &InvalidStateError{
			Spec: fmt.Sprint(stateIDs),
			Reason: fmt.Sprintf("there should be a state for each source: #sources[%d] != #states[%d]",
				len(ap.sources), len(stateIDs)),
		}
	}

	combined := Sample{HasDirect: ap.directLoaded}
	for sid, stateID := range stateIDs {
		if stateID == ExcludedState {
			continue
		}
		if stateID < 0 || stateID >= len(ap.values[sid]) {
			return Sample{}, &InvalidStateError{
				Spec: fmt.Sprint(stateIDs),
				Reason: fmt.Sprintf("state id %d out of range for source %q",
					stateID, ap.sources[sid].Name),
			}
		}
		s, err := ap.sample(sid, stateID, hoy)
		if err != nil {
			return Sample{}, err
		}
		combined.Total += s.Total
		combined.Direct += s.Direct
	}
	return combined, nil
}

// CombinedValuesByID returns the combined sample for each hour. stateIDs
// holds one row per hour; a nil table selects state 0 for every source at
// every hour.
func (ap *AnalysisPoint) CombinedValuesByID(hoys []int, stateIDs [][]int) ([]Sample, error) {
	if stateIDs != nil && len(stateIDs) != len(hoys) {
		return nil, &InvalidStateError{
			Spec: fmt.Sprint(stateIDs),
			Reason: fmt.Sprintf("there should be a list of states for each hour: #states[%d] != #hours[%d]",
				len(stateIDs), len(hoys)),
		}
	}
	out := make([]Sample, len(hoys))
	for i, hoy := range hoys {
		var row []int
		if stateIDs != nil {
			row = stateIDs[i]
		}
		s, err := ap.CombinedValueByID(hoy, row)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// SumValuesByID returns the sum of combined values over the hours. Useful
// for radiation and solar access studies.
func (ap *AnalysisPoint) SumValuesByID(hoys []int, stateIDs [][]int) (Sample, error) {
	samples, err := ap.CombinedValuesByID(hoys, stateIDs)
	if err != nil {
		return Sample{}, err
	}
	sum := Sample{HasDirect: ap.directLoaded}
	for _, s := range samples {
		sum.Total += s.Total
		sum.Direct += s.Direct
	}
	return sum, nil
}

// MaxValuesByID returns the maximum combined total and direct values over
// the hours.
func (ap *AnalysisPoint) MaxValuesByID(hoys []int, stateIDs [][]int) (Sample, error) {
	samples, err := ap.CombinedValuesByID(hoys, stateIDs)
	if err != nil {
		return Sample{}, err
	}
	max := Sample{HasDirect: ap.directLoaded}
	for i, s := range samples {
		if i == 0 || s.Total > max.Total {
			max.Total = s.Total
		}
		if i == 0 || s.Direct > max.Direct {
			max.Direct = s.Direct
		}
	}
	return max, nil
}

// LongestStateIDs returns the longest combination of states across sources:
// row i selects min(i, last state) for every source. It is the default
// blind-state table when the caller does not enumerate one.
func (ap *AnalysisPoint) LongestStateIDs() ([][]int, error) {
	if len(ap.sources) == 0 {
		return nil, fmt.Errorf("point has no sources with loaded values")
	}
	longest := 0
	for _, src := range ap.sources {
		if n := len(src.States) - 1; n > longest {
			longest = n
		}
	}
	rows := make([][]int, longest+1)
	for i := range rows {
		row := make([]int, len(ap.sources))
		for sid, src := range ap.sources {
			row[sid] = i
			if last := len(src.States) - 1; i > last {
				row[sid] = last
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Unload drops all sources and values. Location and direction are kept.
func (ap *AnalysisPoint) Unload() {
	ap.sources = nil
	ap.index = map[string]int{}
	ap.values = nil
	ap.directLoaded = false
}

// Details returns a human-readable description of the point and its
// sources.
func (ap *AnalysisPoint) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %g, %g, %g\n", ap.Location.X, ap.Location.Y, ap.Location.Z)
	fmt.Fprintf(&b, "Direction: %g, %g, %g\n", ap.Direction.X, ap.Direction.Y, ap.Direction.Z)
	fmt.Fprintf(&b, "#hours: %d\n#window groups: %d\n", len(ap.Hoys()), len(ap.sources))
	for _, src := range ap.sources {
		fmt.Fprintf(&b, "\nWindow Group %d: %s\n", src.ID, src.Name)
		for i, state := range src.States {
			fmt.Fprintf(&b, "....State %d: %s\n", i, state)
		}
	}
	return b.String()
}

func (ap *AnalysisPoint) String() string {
	return fmt.Sprintf("AnalysisPoint::(%g, %g, %g)::(%g, %g, %g)",
		ap.Location.X, ap.Location.Y, ap.Location.Z,
		ap.Direction.X, ap.Direction.Y, ap.Direction.Z)
}

// ToRadString returns the point in the `x y z dx dy dz` format consumed by
// the ray-tracing engine.
func (ap *AnalysisPoint) ToRadString() string {
	return fmt.Sprintf("%g %g %g %g %g %g",
		ap.Location.X, ap.Location.Y, ap.Location.Z,
		ap.Direction.X, ap.Direction.Y, ap.Direction.Z)
}
