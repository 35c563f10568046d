package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState reports an operation on a job or instance that cannot accept it,
	// e.g. asking a finished job for its current operation.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument reports a caller contract violation, e.g. assigning an
	// operation that is not the job's current one or is not eligible yet.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedInput reports an instance description with inconsistent counts or values.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoMoreOperations is returned by Job.CurrentOp on a finished job.
	ErrNoMoreOperations = fmt.Errorf("%w: no more operations", ErrInvalidState)
)
