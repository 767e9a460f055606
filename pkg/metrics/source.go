package metrics

// PointSource yields one hourly illuminance series per analysis point, in
// point order. It is the single interface the grid-level metrics consume, so
// the in-memory path (values resident on the grid) and the streaming path
// (rows read from a result file one at a time) run through identical metric
// code and produce identical numbers.
//
// Implementations must invoke fn once per point with the hours and values in
// matching order, and must stop and return the first error fn returns.
type PointSource interface {
	EachPoint(fn func(index int, hoys []int, values []float64) error) error
}

// SliceSource is an in-memory PointSource backed by per-point value slices
// sharing one set of hours. It is mostly useful in tests and for callers
// that already hold the full annual table.
type SliceSource struct {
	Hoys   []int
	Values [][]float64
}

// EachPoint implements PointSource.
func (s SliceSource) EachPoint(fn func(index int, hoys []int, values []float64) error) error {
	for i, vals := range s.Values {
		if err := fn(i, s.Hoys, vals); err != nil {
			return err
		}
	}
	return nil
}
