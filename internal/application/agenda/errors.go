package agenda

import (
	"errors"
	"fmt"

	"github.com/bonitoviento/backend/internal/domain/agenda"
)

// Emission stages reported in metrics and logs
const (
	StageBuild   = "build"
	StagePersist = "persist"
)

// EmissionError describes one consequence of a mutation that could not be
// recorded in the agenda. Primary marks the event that represents the
// mutation itself; every other failure is a partial emission failure.
type EmissionError struct {
	Consequence string
	Kind        agenda.Kind
	Stage       string
	Primary     bool
	Err         error
}

// Error implements the error interface
func (e *EmissionError) Error() string {
	if e.Primary {
		return fmt.Sprintf("primary %s event %q failed at %s: %v", e.Kind, e.Consequence, e.Stage, e.Err)
	}
	return fmt.Sprintf("partial emission failure: %s event %q failed at %s: %v", e.Kind, e.Consequence, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *EmissionError) Unwrap() error {
	return e.Err
}

// IsPartialEmissionFailure reports whether err is a failed secondary event
func IsPartialEmissionFailure(err error) bool {
	var emissionErr *EmissionError
	return errors.As(err, &emissionErr) && !emissionErr.Primary
}
