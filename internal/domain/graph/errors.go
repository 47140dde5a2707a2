package graph

import "errors"

// Sentinel errors for graph integrity violations: fatal, callers branch on
// them with errors.Is and abort the run rather than recovering.
var (
	// ErrDuplicateID is returned when a node or edge id already exists
	// anywhere in the graph.
	ErrDuplicateID = errors.New("graph: duplicate id")

	// ErrNodeNotFound is returned when an operation references a node id
	// that does not exist in the graph.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeNotFound is returned when an operation references an edge id
	// that does not exist in the graph.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrASNotFound is returned when an operation references an AS id that
	// does not exist in the graph.
	ErrASNotFound = errors.New("graph: autonomous system not found")

	// ErrWrongAS is returned by a Replace* operation when the node belongs
	// to a different AS than the one it was invoked on.
	ErrWrongAS = errors.New("graph: node does not belong to this autonomous system")

	// ErrMissingEmulation is returned when creating an EdgeDevice without
	// an EmulationBinding; devices always carry one.
	ErrMissingEmulation = errors.New("graph: edge device requires an emulation binding")
)
