package core

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrMissingAgent = errors.New("no agent DID provided and no local agent found")
	ErrMissingOwner = errors.New("no owner key found")
	ErrMissingToken = errors.New("no delegation token found")

	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)

// ConflictError is returned when a record would be overwritten without
// force.
type ConflictError struct {
	Record string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s identity already exists; use --force to overwrite",
		e.Record)
}

// ValidationError reports malformed user input. Msg is shown as is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError is returned when a record kind was never created. Hint
// names the command which creates it.
type NotFoundError struct {
	Record string
	Hint   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found, run %s first", e.Record, e.Hint)
}

func (e *NotFoundError) Unwrap() error {
	return os.ErrNotExist
}

// DecodeError is returned for malformed stored key encodings.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
