package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/treeline/pkg/domain"
)

// NodeDoc is one node entry in a tree document. A node is a leaf when Leaf
// names an action; otherwise it is a branch and the comparison fields apply.
//
//	nodes:
//	  - threshold: 128
//	    op: lt
//	    left: 1
//	    right: 2
//	  - leaf: SELL
type NodeDoc struct {
	Leaf      string `yaml:"leaf,omitempty"`
	Threshold int    `yaml:"threshold,omitempty"`
	Op        string `yaml:"op,omitempty"` // "lt" (default) or "gt"
	Left      int    `yaml:"left,omitempty"`
	Right     int    `yaml:"right,omitempty"`
}

// Document is a named decision tree in its serialized form.
type Document struct {
	Name  string    `yaml:"name,omitempty"`
	Nodes []NodeDoc `yaml:"nodes"`
}

// Parse decodes and validates a YAML tree document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode tree document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads, decodes and validates a tree document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree document: %w", err)
	}
	return Parse(data)
}

// Validate checks the document structurally: node count within the address
// space, recognizable actions and comparators, in-range child indices, and
// every root-reachable path terminating at a leaf (no cycles).
func (d *Document) Validate() error {
	var errs []error

	if len(d.Nodes) == 0 {
		return &AggregateError{Errors: []error{
			&NodeError{Index: 0, Reason: "document has no nodes"},
		}}
	}
	if len(d.Nodes) > domain.MaxNodes {
		return &AggregateError{Errors: []error{
			&NodeError{Index: domain.MaxNodes, Reason: fmt.Sprintf(
				"%d nodes exceed the %d-entry address space", len(d.Nodes), domain.MaxNodes)},
		}}
	}

	for i, n := range d.Nodes {
		if n.Leaf != "" {
			if _, err := domain.ParseAction(n.Leaf); err != nil {
				errs = append(errs, &NodeError{Index: i, Reason: err.Error()})
			}
			continue
		}
		switch n.Op {
		case "", "lt", "gt":
		default:
			errs = append(errs, &NodeError{Index: i, Reason: fmt.Sprintf("unknown comparator %q", n.Op)})
		}
		if n.Threshold < 0 || n.Threshold > 255 {
			errs = append(errs, &NodeError{Index: i, Reason: fmt.Sprintf("threshold %d out of range [0,255]", n.Threshold)})
		}
		for _, child := range []int{n.Left, n.Right} {
			if child < 0 || child >= len(d.Nodes) {
				errs = append(errs, &NodeError{Index: i, Reason: fmt.Sprintf("child index %d out of range [0,%d]", child, len(d.Nodes)-1)})
			}
		}
	}

	// Structural errors make reachability analysis meaningless.
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	if cycle := d.findCycle(); cycle >= 0 {
		return &AggregateError{Errors: []error{
			&NodeError{Index: cycle, Reason: "cycle reachable from the root"},
		}}
	}

	return nil
}

// findCycle walks the reachable graph from node 0 and returns the index of
// a node on a cycle, or -1. The tree is a DAG over indices, so a node
// revisited while still on the current path is a cycle.
func (d *Document) findCycle() int {
	const (
		unvisited = iota
		onPath
		done
	)
	marks := make([]uint8, len(d.Nodes))

	var visit func(i int) int
	visit = func(i int) int {
		switch marks[i] {
		case onPath:
			return i
		case done:
			return -1
		}
		marks[i] = onPath
		n := d.Nodes[i]
		if n.Leaf == "" {
			if c := visit(n.Left); c >= 0 {
				return c
			}
			if c := visit(n.Right); c >= 0 {
				return c
			}
		}
		marks[i] = done
		return -1
	}
	return visit(0)
}

// Tree converts a validated document into the engine's node table.
func (d *Document) Tree() (domain.Tree, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	tree := make(domain.Tree, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Leaf != "" {
			action, _ := domain.ParseAction(n.Leaf)
			tree[i] = domain.Leaf(action)
			continue
		}
		tree[i] = domain.Branch(uint8(n.Threshold), n.Op != "gt", uint8(n.Left), uint8(n.Right))
	}
	return tree, nil
}

// Marshal serializes the document back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
