package models

import "errors"

// Error kinds. Services wrap these in an AppError; handlers match them with
// errors.Is to pick a status code.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// AppError is an expected failure whose Message is safe to show to callers.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewValidationError(msg string) error {
	return &AppError{Kind: ErrValidation, Message: msg}
}

func NewAuthError(msg string) error {
	return &AppError{Kind: ErrAuth, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &AppError{Kind: ErrForbidden, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: ErrNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &AppError{Kind: ErrConflict, Message: msg}
}
