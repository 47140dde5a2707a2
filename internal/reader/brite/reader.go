// Package brite reads the BRITE topology format: a single text file with
// "Nodes:" and "Edges:" sections.
package brite

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/reader"
)

const (
	minNodeColumns = 7
	minEdgeColumns = 9
	asColumnIndex  = 5 // column 6, 1-indexed
)

// Read parses a BRITE file from r into g, returning an InputError tallying
// any malformed lines encountered. A malformed line is skipped, never
// fatal.
func Read(r io.Reader, g *graph.Graph) *reader.InputError {
	errs := reader.NewInputError()
	scanner := bufio.NewScanner(r)

	section := ""
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "Nodes:"):
			section = "nodes"
			continue
		case strings.HasPrefix(trimmed, "Edges:"):
			section = "edges"
			continue
		}

		switch section {
		case "nodes":
			if err := readNodeLine(line, g); err != "" {
				errs.Record(err)
			}
		case "edges":
			if err := readEdgeLine(line, g); err != "" {
				errs.Record(err)
			}
		}
	}

	return errs
}

func readNodeLine(line string, g *graph.Graph) string {
	cols := strings.Split(strings.TrimSpace(line), "\t")
	if len(cols) < minNodeColumns {
		return "malformed_node_line"
	}

	id, err := strconv.ParseUint(cols[0], 10, 32)
	if err != nil {
		return "numeric_overflow"
	}
	asID, err := strconv.ParseUint(cols[asColumnIndex], 10, 32)
	if err != nil {
		return "numeric_overflow"
	}

	if _, err := g.CreateEdgeRouter(graph.NodeID(id), graph.ASID(asID)); err != nil {
		return "duplicate_node"
	}
	return ""
}

func readEdgeLine(line string, g *graph.Graph) string {
	cols := strings.Split(strings.TrimSpace(line), "\t")
	if len(cols) < minEdgeColumns {
		return "malformed_edge_line"
	}

	id, err := strconv.ParseUint(cols[0], 10, 32)
	if err != nil {
		return "numeric_overflow"
	}
	from, err := strconv.ParseUint(cols[1], 10, 32)
	if err != nil {
		return "numeric_overflow"
	}
	to, err := strconv.ParseUint(cols[2], 10, 32)
	if err != nil {
		return "numeric_overflow"
	}
	delay, err := strconv.ParseFloat(cols[4], 32)
	if err != nil {
		return "numeric_overflow"
	}
	bandwidth, err := strconv.ParseFloat(cols[5], 32)
	if err != nil {
		return "numeric_overflow"
	}

	if _, err := g.CreateEdge(graph.EdgeID(id), graph.NodeID(from), graph.NodeID(to), float32(delay), float32(bandwidth)); err != nil {
		return "malformed_edge_line"
	}
	return ""
}
