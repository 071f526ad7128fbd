package types

import (
	"errors"
	"fmt"
)

var (
	ErrCasoNotFound     = errors.New("caso not found")
	ErrUsuarioNotFound  = errors.New("usuario not found")
	ErrCorreoRegistrado = errors.New("correo already registered")
	ErrCredenciales     = errors.New("invalid credentials")
	ErrUsuarioInactivo  = errors.New("usuario inactive")
)

// ValidationError marks malformed client input, such as an unparseable
// deadline. Its message is safe to return to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a blob store transport or permission failure for a
// specific object key.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation on %q failed: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CaseCreationError wraps whatever aborted the caso creation sequence after
// the transaction has been rolled back.
type CaseCreationError struct {
	Err error
}

func (e *CaseCreationError) Error() string {
	return fmt.Sprintf("caso creation failed: %v", e.Err)
}

func (e *CaseCreationError) Unwrap() error { return e.Err }
