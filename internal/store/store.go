// Package store persists vote records as rows in a flat CSV file.
//
// The file has no header and two fields per row, identifier then candidate.
// It is only ever appended to; nothing here rewrites or deletes a row.
package store

import "context"

// Record is one accepted vote.
type Record struct {
	Identifier string
	Candidate  string
}

// Store is the append-only record list.
type Store interface {
	// Append adds rec as the last row, creating the store if it does not exist.
	Append(ctx context.Context, rec Record) error
	// Contains reports whether any row's identifier equals identifier exactly.
	// A store that has never been written reports false with a nil error.
	Contains(ctx context.Context, identifier string) (bool, error)
}
