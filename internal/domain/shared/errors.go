package shared

import "fmt"

// DomainError is a rule violation raised by an aggregate or service. The HTTP
// layer maps Code to a status; unknown codes answer 400.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal to the
// package-level sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError builds a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource))
}

// NewInvalidStateError builds an INVALID_STATE error
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError("INVALID_STATE", fmt.Sprintf(format, args...))
}

// Sentinels for errors.Is checks
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
