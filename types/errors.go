package types

import "fmt"

// ValidationError rejects a request before any agent runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingDependencyError means an upstream stage did not leave the output a
// later stage needs. It is fatal to the run; no partial result is produced.
type MissingDependencyError struct {
	Stage   string
	Missing string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s requires %s before it can run", e.Stage, e.Missing)
}

// StageError wraps a failure with the name of the stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
