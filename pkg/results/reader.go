package results

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// maxHeaderLines bounds the header scan so a garbage file cannot make the
// reader walk the whole file looking for FORMAT.
const maxHeaderLines = 40

// Options control shape validation while streaming.
type Options struct {
	// ExpectPoints is the number of rows the caller expects. Checked
	// against NROWS only when CheckShape is set.
	ExpectPoints int
	// ExpectHours is the number of columns the caller expects. Checked
	// against NCOLS and against every data row only when CheckShape is set.
	ExpectHours int
	// CheckShape enables the NROWS/NCOLS and row-width checks.
	CheckShape bool
}

// Header holds the parsed matrix header fields. Rows or Cols is zero when
// the header does not declare it.
type Header struct {
	Rows   int
	Cols   int
	Format string
}

// RowIterator streams parsed rows from one result file under a single
// sequential cursor. It is not safe for concurrent use.
type RowIterator struct {
	desc   FileDescriptor
	opts   Options
	f      *os.File
	sc     *bufio.Scanner
	header Header
	row    int
}

// Open prepares a streaming cursor over the descriptor's file: it checks
// for an empty file, parses the header when the descriptor declares one and
// skips the descriptor's start lines.
func Open(desc FileDescriptor, opts Options) (*RowIterator, error) {
	info, err := os.Stat(desc.Path)
	if err != nil {
		return nil, fmt.Errorf("stat result file: %w", err)
	}
	if info.Size() < 2 {
		return nil, &EmptyFileError{Path: desc.Path}
	}

	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}

	sc := bufio.NewScanner(f)
	// annual rows carry thousands of values; default token size is too small
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	it := &RowIterator{desc: desc, opts: opts, f: f, sc: sc}

	if desc.HasHeader {
		if err := it.parseHeader(); err != nil {
			f.Close()
			return nil, err
		}
	}
	for i := 0; i < desc.StartLine; i++ {
		if !sc.Scan() {
			break
		}
	}
	return it, nil
}

// parseHeader consumes lines up to and including the blank line after
// FORMAT, recording NROWS and NCOLS when present.
func (it *RowIterator) parseHeader() error {
	for i := 0; i < maxHeaderLines && it.sc.Scan(); i++ {
		line := it.sc.Text()
		switch {
		case strings.HasPrefix(line, "FORMAT"):
			it.sc.Scan() // blank separator line
			return it.checkHeaderShape()
		case strings.HasPrefix(line, "NROWS"):
			n, err := headerInt(line)
			if err != nil {
				return fmt.Errorf("%s: %w", it.desc.Path, err)
			}
			it.header.Rows = n
		case strings.HasPrefix(line, "NCOLS"):
			n, err := headerInt(line)
			if err != nil {
				return fmt.Errorf("%s: %w", it.desc.Path, err)
			}
			it.header.Cols = n
		}
	}
	return it.checkHeaderShape()
}

func (it *RowIterator) checkHeaderShape() error {
	if !it.opts.CheckShape {
		return nil
	}
	if it.header.Rows > 0 && it.opts.ExpectPoints > 0 && it.header.Rows != it.opts.ExpectPoints {
		return &ShapeMismatchError{
			Path: it.desc.Path, Axis: "rows",
			Declared: it.header.Rows, Expected: it.opts.ExpectPoints,
		}
	}
	if it.header.Cols > 0 && it.opts.ExpectHours > 0 && it.header.Cols != it.opts.ExpectHours {
		return &ShapeMismatchError{
			Path: it.desc.Path, Axis: "cols",
			Declared: it.header.Cols, Expected: it.opts.ExpectHours,
		}
	}
	return nil
}

func headerInt(line string) (int, error) {
	_, val, found := strings.Cut(line, "=")
	if !found {
		return 0, fmt.Errorf("malformed header line %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("malformed header line %q: %w", line, err)
	}
	return n, nil
}

// Header returns the parsed header. Meaningful after Open on a file with a
// header; zero otherwise.
func (it *RowIterator) Header() Header {
	return it.header
}

// Next parses and returns the next data row with the descriptor's value
// transform applied. It returns ok == false at end of file.
func (it *RowIterator) Next() ([]float64, bool, error) {
	if !it.sc.Scan() {
		if err := it.sc.Err(); err != nil {
			return nil, false, fmt.Errorf("read result file %s: %w", it.desc.Path, err)
		}
		return nil, false, nil
	}
	fields := strings.Fields(it.sc.Text())
	if len(fields) == 0 {
		// trailing blank line counts as end of data
		return nil, false, nil
	}
	if it.opts.CheckShape && it.opts.ExpectHours > 0 && len(fields) != it.opts.ExpectHours {
		return nil, false, &ShapeMismatchError{
			Path: it.desc.Path, Axis: "cols",
			Declared: len(fields), Expected: it.opts.ExpectHours,
		}
	}
	values := make([]float64, len(fields))
	for i, fld := range fields {
		v, err := strconv.ParseFloat(fld, 64)
		if err != nil {
			return nil, false, &MalformedRowError{Path: it.desc.Path, Row: it.row, Err: err}
		}
		values[i] = it.desc.Transform(v)
	}
	it.row++
	return values, true, nil
}

// Close releases the underlying file handle.
func (it *RowIterator) Close() error {
	return it.f.Close()
}

// EachRow streams every data row to fn without retaining prior rows. When
// the file holds fewer rows than expected the iteration simply stops.
func EachRow(desc FileDescriptor, opts Options, fn func(row int, values []float64) error) error {
	it, err := Open(desc, opts)
	if err != nil {
		return err
	}
	defer it.Close()

	for row := 0; ; row++ {
		values, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(row, values); err != nil {
			return err
		}
	}
}

// EachSuperposedRow streams the three-matrix superposition row by row:
// the reconstructed value for each hour is total - direct + sun, applied in
// that order with no clamping of negative intermediates. The sun row is
// passed through unchanged so callers can keep it as the noise-free direct
// contribution. When sun is nil the direct row takes its place and the
// total row is used as is (two-file coupled loading).
func EachSuperposedRow(total, direct FileDescriptor, sun *FileDescriptor, opts Options,
	fn func(row int, combined, sunOnly []float64) error) error {

	tIt, err := Open(total, opts)
	if err != nil {
		return err
	}
	defer tIt.Close()

	dIt, err := Open(direct, opts)
	if err != nil {
		return err
	}
	defer dIt.Close()

	var sIt *RowIterator
	if sun != nil {
		sIt, err = Open(*sun, opts)
		if err != nil {
			return err
		}
		defer sIt.Close()
	}

	for row := 0; ; row++ {
		tVals, tOK, err := tIt.Next()
		if err != nil {
			return err
		}
		dVals, dOK, err := dIt.Next()
		if err != nil {
			return err
		}
		if !tOK || !dOK {
			return nil
		}
		if len(tVals) != len(dVals) {
			return &ShapeMismatchError{
				Path: direct.Path, Axis: "cols",
				Declared: len(dVals), Expected: len(tVals),
			}
		}

		if sIt == nil {
			if err := fn(row, tVals, dVals); err != nil {
				return err
			}
			continue
		}

		sVals, sOK, err := sIt.Next()
		if err != nil {
			return err
		}
		if !sOK {
			return nil
		}
		if len(sVals) != len(tVals) {
			return &ShapeMismatchError{
				Path: sun.Path, Axis: "cols",
				Declared: len(sVals), Expected: len(tVals),
			}
		}
		combined := make([]float64, len(tVals))
		for i := range tVals {
			combined[i] = tVals[i] - dVals[i] + sVals[i]
		}
		if err := fn(row, combined, sVals); err != nil {
			return err
		}
	}
}
