package resolver

import (
	"errors"
	"fmt"

	"github.com/vk/genlogcfg/internal/formula"
)

var (
	// ErrParameterNotFound means the catalog has no definition for the id.
	ErrParameterNotFound = errors.New("parameter definition not found")

	// ErrUnitNotFound means the definition has no conversion for the unit.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrMissingEcuID means an extended parameter was requested without an ECU id.
	ErrMissingEcuID = errors.New("ECU id required")

	// ErrEcuDefinitionNotFound means no ECU variant matched the ECU id.
	ErrEcuDefinitionNotFound = errors.New("ECU definition not found")

	// ErrDependencyUnresolved means a parameter this one refers to was dropped.
	ErrDependencyUnresolved = errors.New("dependency unresolved")

	// ErrMalformedExpression is re-exported so callers need only this package.
	ErrMalformedExpression = formula.ErrMalformedExpression

	// ErrCyclicDependency aborts sorting; no order exists.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// ParamError is a recoverable, per-parameter diagnostic. The parameter it
// names has been left out of the result.
type ParamError struct {
	Key    string
	Err    error
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
