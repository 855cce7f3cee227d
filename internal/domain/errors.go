package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountNameTaken = errors.New("account name already in use")

	// Entry errors
	ErrEntryNotFound       = errors.New("entry not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("invalid amount")

	// Classification errors
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryKindMismatch = errors.New("category is not related to this entry kind")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already in use")
	ErrMissingCaller = errors.New("caller identity is required")

	// ErrReferencedEntityProtected is returned when a row cannot be deleted
	// because other rows still reference it.
	ErrReferencedEntityProtected = errors.New("entity is referenced and cannot be deleted")

	// ErrInvalidInput covers malformed values that reach the engine.
	ErrInvalidInput = errors.New("invalid input")
)
