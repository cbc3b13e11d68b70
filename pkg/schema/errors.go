package schema

import (
	"fmt"

	"github.com/aretw0/treeline/pkg/domain"
)

// NodeError represents a single node validation failure.
type NodeError struct {
	Index  int    // node address in the document
	Reason string // human-readable reason for failure
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d: %s", e.Index, e.Reason)
}

// Unwrap ties every structural failure to the domain sentinel so callers
// can check errors.Is(err, domain.ErrMalformedTree).
func (e *NodeError) Unwrap() error {
	return domain.ErrMalformedTree
}

// AggregateError collects multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As; each
// NodeError in turn unwraps to domain.ErrMalformedTree.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
