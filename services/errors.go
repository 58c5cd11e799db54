package services

import "errors"

var (
	// auth errors
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")

	// task errors
	ErrTagNotFound     = errors.New("tag not found")
	ErrEmptyTask       = errors.New("task text must not be empty")
	ErrInvalidDeadline = errors.New("deadline must be a YYYY-MM-DD date")

	// validation errors
	ErrInvalidInput = errors.New("invalid input")
)
