package skeleton

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolygon reports input rejected before the simulation starts.
	ErrInvalidPolygon = errors.New("skeleton: invalid polygon")
	// ErrTopology reports a broken wavefront or face invariant.
	ErrTopology = errors.New("skeleton: topology invariant violated")
	// ErrTooManyIterations reports a run that did not converge.
	ErrTooManyIterations = errors.New("skeleton: too many iterations")
)

// BuildError is returned by Build for every fatal failure. Kind is one of the
// sentinel errors above.
type BuildError struct {
	Kind error
	Op   string
	Msg  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *BuildError) Unwrap() error { return e.Kind }

// fail aborts the current build. The panic is recovered by Builder.Build.
func fail(kind error, op, format string, args ...interface{}) {
	panic(&BuildError{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)})
}

func topologyFailure(op, format string, args ...interface{}) {
	fail(ErrTopology, op, format, args...)
}
