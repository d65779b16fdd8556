package model

import (
	"errors"
	"fmt"
	"todo-api/pkg/msg"
)

// ErrorKind classifies the failures a todo operation can report
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindValidation      ErrorKind = "VALIDATION"
	KindPersistence     ErrorKind = "PERSISTENCE"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
)

const (
	FieldTodo      = "todo"
	FieldException = "exception"
	FieldSession   = "session"
)

// DomainError is the error type returned by the use cases. It carries the
// field the failure refers to so it can be rendered as a response entry.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

var (
	ErrNotFound        = &DomainError{Kind: KindNotFound}
	ErrForbidden       = &DomainError{Kind: KindForbidden}
	ErrValidation      = &DomainError{Kind: KindValidation}
	ErrPersistence     = &DomainError{Kind: KindPersistence}
	ErrUnauthenticated = &DomainError{Kind: KindUnauthenticated}
)

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same kind, so errors.Is(err, ErrNotFound) works
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewNotFoundError() *DomainError {
	return &DomainError{Kind: KindNotFound, Field: FieldTodo, Message: msg.GetMessage("todo.error.not-found")}
}

func NewForbiddenError() *DomainError {
	return &DomainError{Kind: KindForbidden, Field: FieldException, Message: msg.GetMessage("todo.error.forbidden")}
}

func NewUnauthenticatedError() *DomainError {
	return &DomainError{Kind: KindUnauthenticated, Field: FieldSession, Message: msg.GetMessage("todo.error.unauthenticated")}
}

func NewValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

func NewPersistenceError(err error) *DomainError {
	return &DomainError{Kind: KindPersistence, Field: FieldException, Message: msg.GetMessage("todo.error.persistence"), Err: err}
}

// AsDomainError returns the DomainError in err's chain, if any
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
