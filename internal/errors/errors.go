package errors

import "net/http"

// DomainError is a stable machine-readable failure. Services return
// these; the HTTP layer maps Status and serializes Code/Message
// without leaking storage details.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying a more specific human message.
// The code and status stay stable so errors.Is keeps matching.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg, Status: e.Status}
}

// Is matches by code, so WithMessage copies compare equal to their
// sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Validation returns a 400 VALIDATION_ERROR with the given message.
func Validation(msg string) *DomainError {
	return &DomainError{Code: "VALIDATION_ERROR", Message: msg, Status: http.StatusBadRequest}
}
