package errors

import (
	"errors"
)

// The finance API distinguishes five failure kinds. Handlers map each
// kind to an HTTP status; services only ever return one of these (or a
// raw error, which surfaces as an internal error).

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// DependencyError reports a transition blocked by a referenced entity:
// deleting a category that still has expenses, or restoring an expense
// whose category is soft deleted.
type DependencyError struct {
	Msg string
}

func (e *DependencyError) Error() string {
	return e.Msg
}

func NewDependencyError(msg string) error {
	return &DependencyError{Msg: msg}
}

func IsDependencyError(err error) bool {
	var dependencyError *DependencyError
	return errors.As(err, &dependencyError)
}

// StateError reports a redundant transition, e.g. restoring a record
// that is already active.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return e.Msg
}

func NewStateError(msg string) error {
	return &StateError{Msg: msg}
}

func IsStateError(err error) bool {
	var stateError *StateError
	return errors.As(err, &stateError)
}
