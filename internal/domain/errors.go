// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyUsername is returned when a user is created without a username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrInvalidAge is returned when a user's age is negative.
	ErrInvalidAge = errors.New("age cannot be negative")

	// ErrEmptyTitle is returned when a task is created without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrMissingOwner is returned when a task does not reference an owning user.
	ErrMissingOwner = errors.New("task must reference an owning user")
)
