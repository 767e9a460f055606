package results

import "fmt"

// EmptyFileError reports a result file too small to hold any data. It is
// raised before any parsing starts.
type EmptyFileError struct {
	Path string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("result file is empty: %s", e.Path)
}

// ShapeMismatchError reports a disagreement between the declared matrix
// shape and the expected number of points or hours.
type ShapeMismatchError struct {
	Path     string
	Axis     string // "rows" or "cols"
	Declared int
	Expected int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: declared %s [%d] do not match expected [%d]",
		e.Path, e.Axis, e.Declared, e.Expected)
}

// MalformedRowError reports a data row that could not be parsed.
type MalformedRowError struct {
	Path string
	Row  int
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: malformed row %d: %v", e.Path, e.Row, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
