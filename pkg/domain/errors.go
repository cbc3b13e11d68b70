package domain

import "errors"

// ErrMalformedTree is returned when a tree fails structural validation
// (out-of-range child index, or a cycle reachable from the root).
var ErrMalformedTree = errors.New("malformed tree")

// ErrReportNotFound is returned when a report ID cannot be found in a store.
var ErrReportNotFound = errors.New("report not found")

// ErrEmptyTree is returned when a session is created with no nodes.
var ErrEmptyTree = errors.New("tree has no nodes")
