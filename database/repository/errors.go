package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a conditional update matched no document because
	// the record changed state underneath the caller.
	ErrConflict = errors.New("record state changed")
)
