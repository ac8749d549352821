package squirrel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvocation matches every *InvocationError via errors.Is.
var ErrInvocation = errors.New("squirrel invocation failed")

// errNonZeroExit is the cause recorded when the tool exits with a failure status.
var errNonZeroExit = errors.New("non-zero exit status")

// InvocationError reports that the tool could not be started or exited with a failure status.
type InvocationError struct {
	// Tool is the executable that was run.
	Tool string
	// Args is the argument list passed to the tool.
	Args []string
	// ExitCode is the tool's exit status, or -1 if it never ran to completion.
	ExitCode int
	// Stderr is the captured standard error of the tool.
	Stderr string
	// Err is the underlying spawn or wait error.
	Err error
}

// Error implements error.
func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with code %d: %v", ErrInvocation, e.Tool, e.ExitCode, e.Err)

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvocation) true for any InvocationError.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}
