package repository

import "errors"

var (
	// ErrSnapshotNotFound is returned when the provider knows nothing about the symbol.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
