// Package domain holds the typed error taxonomy shared by the ledger
// services. Every failure a manager can return is one of these sentinels,
// so callers can branch on errors.Is without string matching.
package domain

import "errors"

var (
	// ErrInvalidPhoneNumber is returned when a phone number has fewer than
	// ten digits or contains non-digit characters.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	// ErrDuplicatePhoneNumber is returned when creating an account with a
	// phone number that already exists.
	ErrDuplicatePhoneNumber = errors.New("phone number already registered")
	// ErrAccountNotFound is returned when an account cannot be resolved.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidOperationType is returned for any operation type outside
	// {payment, wage}. The balance is left unchanged.
	ErrInvalidOperationType = errors.New("invalid operation type")
	// ErrOperationNotFound is returned when an operation cannot be resolved.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrNegativeValue is returned when an operation value is below zero.
	ErrNegativeValue = errors.New("operation value must not be negative")
	// ErrInvalidCredentials is returned when a password does not match the
	// stored credential.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
