package fogplacer

import (
	"testing"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
	"github.com/stretchr/testify/assert"
)

func TestLess_LowerAverageDeploymentCostWins(t *testing.T) {
	a := newCandidateState(1)
	a.fogType = &placement.FogType{Cost: 10}
	a.coveredCount = 5 // 2.0

	b := newCandidateState(2)
	b.fogType = &placement.FogType{Cost: 10}
	b.coveredCount = 2 // 5.0

	assert.True(t, less(a, b))
	assert.False(t, less(b, a))
}

func TestLess_TieBreaksOnConnectionCostThenCoveredCountThenID(t *testing.T) {
	a := newCandidateState(5)
	a.fogType = &placement.FogType{Cost: 10}
	a.coveredCount = 5
	a.avgConnectionCost = 1

	b := newCandidateState(2)
	b.fogType = &placement.FogType{Cost: 10}
	b.coveredCount = 5
	b.avgConnectionCost = 2

	assert.True(t, less(a, b), "lower average_connection_cost should win")

	b.avgConnectionCost = 1
	b.fogType = &placement.FogType{Cost: 18}
	b.coveredCount = 9 // 18/9 = 2.0, same deployment cost as a
	assert.True(t, less(b, a), "higher covered_count should win when connection cost ties")

	b.fogType = &placement.FogType{Cost: 10}
	b.coveredCount = 5
	assert.True(t, less(b, a), "smaller node id should win the final tie-break")
}

func TestPickWinner_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, pickWinner(map[graph.NodeID]*candidateState{}))
}

func TestPickWinner_SelectsMinimalKey(t *testing.T) {
	cheap := newCandidateState(1)
	cheap.fogType = &placement.FogType{Cost: 1}
	cheap.coveredCount = 10

	expensive := newCandidateState(2)
	expensive.fogType = &placement.FogType{Cost: 100}
	expensive.coveredCount = 1

	winner := pickWinner(map[graph.NodeID]*candidateState{1: cheap, 2: expensive})
	assert.Same(t, cheap, winner)
}
