package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed domain error.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", "email ou mot de passe invalide")
	ErrNotFound           = New("NOT_FOUND", "enregistrement non trouvé")
	ErrForbidden          = New("FORBIDDEN", "opération non autorisée")
	ErrConflict           = New("CONFLICT", "conflit")
	ErrValidation         = New("VALIDATION_ERROR", "validation échouée")
	ErrInternal           = New("INTERNAL_ERROR", "erreur interne")
	ErrSlotOccupied       = New("SLOT_OCCUPIED", "ce créneau est déjà occupé")
	ErrSlotEmpty          = New("SLOT_EMPTY", "ce créneau est vide")
	ErrAlreadyEnrolled    = New("ALREADY_ENROLLED", "l'étudiant est déjà inscrit à ce cours")
	ErrNotEnrolled        = New("NOT_ENROLLED", "l'étudiant n'est pas inscrit à ce cours")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
