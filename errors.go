package audio

import (
	"errors"
	"fmt"
)

// Op names the backend step that failed.
type Op string

const (
	OpConnect  Op = "connect"
	OpRegister Op = "register ports"
	OpActivate Op = "activate"
)

// BackendError reports a failure at the audio backend boundary.  None of
// them are retried.
type BackendError struct {
	Op      Op
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsOp reports whether err is a BackendError for op.
func IsOp(err error, op Op) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Op == op
}
