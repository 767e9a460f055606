package grid

import "fmt"

// MissingHourError reports a combination query for an hour that was never
// loaded for a selected source and state.
type MissingHourError struct {
	Hoy    int
	Source string
	State  string
}

func (e *MissingHourError) Error() string {
	return fmt.Sprintf("no values loaded for hour %d (source %q, state %q)",
		e.Hoy, e.Source, e.State)
}

// InvalidStateError reports a malformed blind-state specification.
type InvalidStateError struct {
	Spec   string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid blind state %q: %s", e.Spec, e.Reason)
}
