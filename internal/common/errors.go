// Package common defines sentinel errors and small helpers shared by the
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account errors.
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Storage errors. ErrPersistence wraps the underlying I/O failure;
	// ErrCorruptState marks stored data that cannot be decoded.
	ErrPersistence  = errors.New("persistence failure")
	ErrCorruptState = errors.New("corrupt stored state")

	// ErrOperationInProgress is returned when an auth operation is submitted
	// while another one is still running.
	ErrOperationInProgress = errors.New("operation already in progress")
)
