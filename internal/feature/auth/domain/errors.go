// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

var (
	// ErrUserAlreadyExists is returned by signup for an email that is already registered.
	// Emails are compared after normalization, so case and surrounding spaces do not matter.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound is returned by user lookups. Login never exposes it.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned by signup when the password is too short or
	// longer than bcrypt accepts.
	ErrWeakPassword = errors.New("password does not meet requirements")
)
