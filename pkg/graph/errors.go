package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrNodeNotFound is returned when an operation references a node that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNode is returned when a node with the same label already exists.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrEdgeNotFound is returned when removing an edge that does not exist.
	ErrEdgeNotFound = errors.New("edge not found")
)
