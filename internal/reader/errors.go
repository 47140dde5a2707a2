// Package reader holds the shared error-accounting type the BRITE and
// CAIDA readers both use.
package reader

import "fmt"

// InputError is a non-fatal per-kind tally of malformed input records: the
// reader counts and skips bad lines rather than aborting the run.
type InputError struct {
	Counts map[string]int
}

// NewInputError returns an empty InputError ready for accumulation.
func NewInputError() *InputError {
	return &InputError{Counts: make(map[string]int)}
}

// Record tallies one occurrence of kind (e.g. "malformed_node_line",
// "duplicate_node", "numeric_overflow").
func (e *InputError) Record(kind string) {
	e.Counts[kind]++
}

// Total returns the sum of all recorded counts.
func (e *InputError) Total() int {
	var total int
	for _, c := range e.Counts {
		total += c
	}
	return total
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reader: %d malformed record(s) skipped: %v", e.Total(), e.Counts)
}

// HasErrors reports whether any record was skipped.
func (e *InputError) HasErrors() bool {
	return e.Total() > 0
}
