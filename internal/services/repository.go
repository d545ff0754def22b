// Package services provides repository interfaces and SQLite implementations
// for recipes and the personal story. This layer sits between the raw SQLite
// store and the HTTP handlers.
package services

import "errors"

// ListOptions controls pagination for list queries.
type ListOptions struct {
	Limit  int // Max results; 0 means no limit.
	Offset int // Number of results to skip.
}

// ListResult wraps a page of results with the number of matches before
// pagination.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Sentinel errors returned by repositories.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// normalizeListOptions clamps negative values to zero.
func normalizeListOptions(opts ListOptions) ListOptions {
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

// paginate returns the window of items selected by opts.
func paginate[T any](items []T, opts ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
