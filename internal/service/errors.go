package service

import "errors"

var (
	// ErrWalkNotFound is returned when a walk does not exist or belongs to another user
	ErrWalkNotFound = errors.New("walk not found")
	// ErrProfileNotFound is returned when a user has no profile row and the
	// step goal is required
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("invalid date format")
	// ErrInvalidPeriod indicates a history period other than week, month, or year
	ErrInvalidPeriod = errors.New("invalid period")
)
