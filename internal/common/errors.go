// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ledger validation errors.
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidKind     = errors.New("kind must be income or expense")
	ErrInvalidDate     = errors.New("date must be set")
	ErrInvalidCategory = errors.New("category must not be empty")

	// Ledger lifecycle errors.
	ErrNotLoaded   = errors.New("ledger not loaded")
	ErrStoreClosed = errors.New("ledger store closed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
