// Package results reads the flat matrix result files produced by the
// ray-tracing engine: an optional NROWS/NCOLS/FORMAT header followed by one
// whitespace-separated row of hourly values per analysis point. Rows are
// streamed one at a time so memory stays bounded by the number of hours,
// not the number of points.
package results

// Value transform modes applied while streaming.
//
// ModeRaw loads values as they are. ModeBinary collapses any positive value
// to 1 (sunlight-hour style studies). Any mode greater than 1 divides every
// value by the mode (daylight factor and radiation normalization).
const (
	ModeRaw    = 0.0
	ModeBinary = 1.0
)

// FileDescriptor records where a not-necessarily-loaded matrix of values
// lives on disk and how to interpret it. Descriptors are created once and
// never mutated.
type FileDescriptor struct {
	Path      string  `json:"path" yaml:"path"`
	Hoys      []int   `json:"hoys,omitempty" yaml:"hoys,omitempty"`
	StartLine int     `json:"start_line" yaml:"start_line"`
	HasHeader bool    `json:"has_header" yaml:"has_header"`
	Mode      float64 `json:"mode" yaml:"mode"`
}

// Transform applies the descriptor's value transform to a raw sample.
func (d FileDescriptor) Transform(v float64) float64 {
	switch {
	case d.Mode == ModeBinary:
		if v > 0 {
			return 1
		}
		return 0
	case d.Mode > 1:
		return v / d.Mode
	default:
		return v
	}
}
