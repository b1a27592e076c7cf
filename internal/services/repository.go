// Package services provides SQLite-backed repositories for film collections.
// This layer bridges the raw SQLite store with the query service and the
// import command.
package services

import "errors"

// Sentinel errors returned by repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
