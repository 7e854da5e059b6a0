package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrVersionConflict is returned when a document insert loses the race for a
// version number inside its (party, type, name) group. Callers retry the
// insert so the next resolver read observes the committed row.
var ErrVersionConflict = errors.New("document version conflict")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
