package usecase

import "skinfolio_backend/internal/feature/auth/domain"

// Re-exported so that adapters only depend on the usecase package.
var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = domain.ErrUserNotFound

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = domain.ErrUserAlreadyExists

	// ErrWeakPassword is returned by Signup when the password length is out of range.
	ErrWeakPassword = domain.ErrWeakPassword
)
