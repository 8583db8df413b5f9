package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Start was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates Stop was called before Start.
	ErrNotRunning = errors.New("application not running")

	// ErrNoActiveWindow indicates the host has no focused window.
	ErrNoActiveWindow = errors.New("no active window")

	// ErrNoActiveView indicates the focused window has no view.
	ErrNoActiveView = errors.New("no active view")

	// ErrUnknownCommand indicates a command name nothing handles.
	ErrUnknownCommand = errors.New("unknown command")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Command or operation name
	Target string // File name or window id
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNoTarget reports whether err means there was no window or view to act on.
func IsNoTarget(err error) bool {
	return errors.Is(err, ErrNoActiveWindow) || errors.Is(err, ErrNoActiveView)
}
