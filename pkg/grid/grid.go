package grid

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ladybug-tools/daylightgrid/pkg/geo"
	"github.com/ladybug-tools/daylightgrid/pkg/results"
)

// LoadState is the derived loading state of a grid.
type LoadState int

const (
	// Raw means the points carry geometry only.
	Raw LoadState = iota
	// FilesRegistered means result files are recorded but not read.
	FilesRegistered
	// LoadedSnapshot means values are loaded for exactly one hour.
	LoadedSnapshot
	// LoadedAnnual means values are loaded for multiple hours.
	LoadedAnnual
)

func (s LoadState) String() string {
	switch s {
	case FilesRegistered:
		return "files-registered"
	case LoadedSnapshot:
		return "loaded-snapshot"
	case LoadedAnnual:
		return "loaded-annual"
	default:
		return "raw"
	}
}

// AnalysisGrid is an ordered, fixed-length collection of analysis points
// sharing one source/state schema. It coordinates bulk loading, result-file
// bookkeeping and grid-level metrics.
type AnalysisGrid struct {
	name         string
	points       []*AnalysisPoint
	windowGroups []string

	totalFiles  []results.FileDescriptor
	directFiles []results.FileDescriptor
}

// New creates a grid from existing points. The point count is fixed from
// here on.
func New(points []*AnalysisPoint, name string, windowGroups []string) *AnalysisGrid {
	if name == "" {
		name = "analysis_grid"
	}
	return &AnalysisGrid{
		name:         name,
		points:       points,
		windowGroups: append([]string(nil), windowGroups...),
	}
}

// FromPointsAndVectors creates a grid from parallel location and direction
// slices. Missing directions default to straight up.
func FromPointsAndVectors(points, vectors []geo.Point3, name string, windowGroups []string) *AnalysisGrid {
	aps := make([]*AnalysisPoint, len(points))
	for i, pt := range points {
		dir := geo.Up
		if i < len(vectors) {
			dir = vectors[i]
		}
		aps[i] = NewAnalysisPoint(pt, dir)
	}
	return New(aps, name, windowGroups)
}

// FromFile creates a grid from a whitespace-separated points file with
// `x y z [dx dy dz]` per line. startLine skips leading lines; endLine < 0
// reads to the end of the file.
func FromFile(path string, startLine, endLine int) (*AnalysisGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open points file: %w", err)
	}
	defer f.Close()

	var points []*AnalysisPoint
	sc := bufio.NewScanner(f)
	for line := 0; sc.Scan(); line++ {
		if line < startLine {
			continue
		}
		if endLine >= 0 && line > endLine {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 && len(fields) != 6 {
			return nil, fmt.Errorf("points file %s line %d: expected 3 or 6 values, got %d",
				path, line+1, len(fields))
		}
		vals := make([]float64, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("points file %s line %d: %w", path, line+1, err)
			}
			vals[i] = v
		}
		loc := geo.Pt(vals[0], vals[1], vals[2])
		dir := geo.Up
		if len(vals) == 6 {
			dir = geo.Pt(vals[3], vals[4], vals[5])
		}
		points = append(points, NewAnalysisPoint(loc, dir))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read points file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(points, name, nil), nil
}

// Name returns the grid name.
func (g *AnalysisGrid) Name() string { return g.name }

// Len returns the number of points.
func (g *AnalysisGrid) Len() int { return len(g.points) }

// Point returns the point at index i.
func (g *AnalysisGrid) Point(i int) *AnalysisPoint { return g.points[i] }

// Points returns the ordered points. The slice must not be resized.
func (g *AnalysisGrid) Points() []*AnalysisPoint { return g.points }

// WindowGroups returns the declared source names for this grid. The list
// may be empty until values are loaded.
func (g *AnalysisGrid) WindowGroups() []string { return g.windowGroups }

// Sources returns the source schema of the first point holding values.
func (g *AnalysisGrid) Sources() []*Source {
	for _, p := range g.points {
		if p.HasValues() {
			return p.Sources()
		}
	}
	return nil
}

// HasValues reports whether any point has loaded results.
func (g *AnalysisGrid) HasValues() bool {
	for _, p := range g.points {
		if p.HasValues() {
			return true
		}
	}
	return false
}

// HasDirectValues reports whether direct values are loaded.
func (g *AnalysisGrid) HasDirectValues() bool {
	for _, p := range g.points {
		if p.HasValues() {
			return p.HasDirectValues()
		}
	}
	return false
}

// Hoys returns the hours of the year with loaded results.
func (g *AnalysisGrid) Hoys() []int {
	for _, p := range g.points {
		if p.HasValues() {
			return p.Hoys()
		}
	}
	return nil
}

// IsPointInTime reports whether results cover exactly one hour.
func (g *AnalysisGrid) IsPointInTime() bool {
	return len(g.Hoys()) == 1
}

// State derives the loading state from the loaded values and registered
// files. It is never stored.
func (g *AnalysisGrid) State() LoadState {
	if g.HasValues() {
		if g.IsPointInTime() {
			return LoadedSnapshot
		}
		return LoadedAnnual
	}
	if len(g.totalFiles)+len(g.directFiles) > 0 {
		return FilesRegistered
	}
	return Raw
}

// AddResultFiles registers a result file without reading it. Use this to
// compute annual metrics by streaming rather than loading every value.
func (g *AnalysisGrid) AddResultFiles(fd results.FileDescriptor, isDirect bool) {
	if isDirect {
		g.directFiles = append(g.directFiles, fd)
	} else {
		g.totalFiles = append(g.totalFiles, fd)
	}
}

// ResultFiles returns the registered total and direct file descriptors.
func (g *AnalysisGrid) ResultFiles() (total, direct []results.FileDescriptor) {
	return g.totalFiles, g.directFiles
}

// readerOptions builds the shape checks for streaming a descriptor into
// this grid.
func (g *AnalysisGrid) readerOptions(fd results.FileDescriptor, checkPointCount bool) results.Options {
	return results.Options{
		ExpectPoints: len(g.points),
		ExpectHours:  len(fd.Hoys),
		CheckShape:   checkPointCount,
	}
}

// rowHoys resolves the hours for a streamed row: the descriptor's hours
// when declared, otherwise 0..len(row)-1.
func rowHoys(fd results.FileDescriptor, row []float64) []int {
	if len(fd.Hoys) > 0 {
		return fd.Hoys
	}
	hoys := make([]int, len(row))
	for i := range hoys {
		hoys[i] = i
	}
	return hoys
}

// SetValuesFromFile streams one result file into the points, row i of the
// file assigned to point i. Row order in the file must match point order in
// the grid; only the count is validated, and only when checkPointCount is
// set. The file is also registered for later streaming passes.
func (g *AnalysisGrid) SetValuesFromFile(fd results.FileDescriptor, source, state string, isDirect, checkPointCount bool) error {
	g.AddResultFiles(fd, isDirect)

	return results.EachRow(fd, g.readerOptions(fd, checkPointCount), func(row int, values []float64) error {
		if row >= len(g.points) {
			return nil
		}
		return g.points[row].SetValues(values, rowHoys(fd, values), source, state, isDirect)
	})
}

// SetCoupledValuesFromFile streams total and direct files in lockstep and
// writes (total, direct) pairs. When sun is non-nil the three-term
// superposition is applied: the combined value is total - direct + sun and
// the noise-free sun row becomes the stored direct contribution.
func (g *AnalysisGrid) SetCoupledValuesFromFile(total, direct results.FileDescriptor, sun *results.FileDescriptor, source, state string, checkPointCount bool) error {
	g.AddResultFiles(total, false)
	g.AddResultFiles(direct, true)
	if sun != nil {
		g.AddResultFiles(*sun, true)
	}

	opts := g.readerOptions(total, checkPointCount)
	return results.EachSuperposedRow(total, direct, sun, opts, func(row int, combined, sunOnly []float64) error {
		if row >= len(g.points) {
			return nil
		}
		hoys := rowHoys(total, combined)
		pairs := make([][]float64, len(combined))
		for i := range combined {
			pairs[i] = []float64{combined[i], sunOnly[i]}
		}
		return g.points[row].SetCoupledValues(pairs, hoys, source, state)
	})
}

// LoadFileSets clears any loaded values and streams every file set into the
// points. This is the manifest-driven loading path.
func (g *AnalysisGrid) LoadFileSets(sets []results.FileSet) error {
	g.clearValues()
	for _, set := range sets {
		if err := g.loadFileSet(set); err != nil {
			return fmt.Errorf("loading %s..%s: %w", set.Source, set.State, err)
		}
	}
	return nil
}

func (g *AnalysisGrid) loadFileSet(set results.FileSet) error {
	switch {
	case set.Total != nil && set.Direct != nil:
		// three files give the full superposition, two give coupled values
		return g.SetCoupledValuesFromFile(*set.Total, *set.Direct, set.Sun, set.Source, set.State, false)
	case set.Total != nil && set.Sun != nil:
		// total already merged; the sun matrix carries the direct channel
		return g.SetCoupledValuesFromFile(*set.Total, *set.Sun, nil, set.Source, set.State, false)
	case set.Total != nil:
		return g.SetValuesFromFile(*set.Total, set.Source, set.State, false, false)
	case set.Direct != nil:
		return g.SetValuesFromFile(*set.Direct, set.Source, set.State, true, false)
	default:
		return fmt.Errorf("file set names no files")
	}
}

// LoadValuesFromFiles re-streams all registered result files into the
// points, deriving source and state names from the filename convention and
// discovering sun/direct siblings on disk.
func (g *AnalysisGrid) LoadValuesFromFiles() error {
	totals := g.totalFiles
	directs := g.directFiles
	g.clearValues()
	g.totalFiles = nil
	g.directFiles = nil

	for i, fd := range totals {
		source, state, ok := results.ParseSourceState(fd.Path)
		if !ok {
			source, state = DefaultSource, DefaultState
		}
		set := results.FileSet{Source: source, State: state, Total: &totals[i]}
		if i < len(directs) {
			set.Direct = &directs[i]
		}
		if p := results.Sibling(fd.Path, "sun"); fileExists(p) {
			sun := fd
			sun.Path = p
			set.Sun = &sun
		}
		if err := g.loadFileSet(set); err != nil {
			return fmt.Errorf("loading %s..%s: %w", source, state, err)
		}
	}
	if len(totals) == 0 {
		for i, fd := range directs {
			source, state, ok := results.ParseSourceState(fd.Path)
			if !ok {
				source, state = DefaultSource, DefaultState
			}
			if err := g.loadFileSet(results.FileSet{Source: source, State: state, Direct: &directs[i]}); err != nil {
				return fmt.Errorf("loading %s..%s: %w", source, state, err)
			}
		}
	}
	return nil
}

func (g *AnalysisGrid) clearValues() {
	for _, p := range g.points {
		p.Unload()
	}
}

// Unload drops all loaded values and registered files, returning the grid
// to its raw state. Calling it twice is a no-op the second time.
func (g *AnalysisGrid) Unload() {
	g.totalFiles = nil
	g.directFiles = nil
	g.clearValues()
}

// CombinedValuesByID returns per-point combined samples for the hours.
func (g *AnalysisGrid) CombinedValuesByID(hoys []int, stateIDs [][]int) ([][]Sample, error) {
	out := make([][]Sample, len(g.points))
	for i, p := range g.points {
		samples, err := p.CombinedValuesByID(hoys, stateIDs)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = samples
	}
	return out, nil
}

// Append merges another grid's points into a new grid. Grids with loaded
// values must agree on hours and source schema.
func (g *AnalysisGrid) Append(other *AnalysisGrid) (*AnalysisGrid, error) {
	if g.HasValues() && other.HasValues() {
		a, b := g.Hoys(), other.Hoys()
		if len(a) != len(b) {
			return nil, fmt.Errorf("grids must cover the same hours: %d != %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				return nil, fmt.Errorf("grids must cover the same hours")
			}
		}
		if err := sameSchema(g.Sources(), other.Sources()); err != nil {
			return nil, err
		}
	}
	points := append(append([]*AnalysisPoint{}, g.points...), other.points...)
	groups := append(append([]string{}, g.windowGroups...), other.windowGroups...)
	return New(points, g.name+"+"+other.name, groups), nil
}

func sameSchema(a, b []*Source) error {
	if len(a) != len(b) {
		return fmt.Errorf("grids with values must share the same sources: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || len(a[i].States) != len(b[i].States) {
			return fmt.Errorf("grids with values must share the same sources: %q != %q",
				a[i].Name, b[i].Name)
		}
		for j := range a[i].States {
			if a[i].States[j] != b[i].States[j] {
				return fmt.Errorf("source %q states differ: %q != %q",
					a[i].Name, a[i].States[j], b[i].States[j])
			}
		}
	}
	return nil
}

// ToRadString returns all points in the format consumed by the ray-tracing
// engine, one per line.
func (g *AnalysisGrid) ToRadString() string {
	lines := make([]string, len(g.points))
	for i, p := range g.points {
		lines[i] = p.ToRadString()
	}
	return strings.Join(lines, "\n")
}

// WritePoints writes the grid's points file into folder. The default file
// name is the grid name with a .pts extension.
func (g *AnalysisGrid) WritePoints(folder, filename string) (string, error) {
	if filename == "" {
		filename = g.name + ".pts"
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("creating points folder: %w", err)
	}
	path := filepath.Join(folder, filename)
	if err := os.WriteFile(path, []byte(g.ToRadString()+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing points file: %w", err)
	}
	return path, nil
}

func (g *AnalysisGrid) String() string {
	return fmt.Sprintf("AnalysisGrid::%s::#%d::%s", g.name, len(g.points), g.State())
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
