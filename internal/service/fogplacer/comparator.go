package fogplacer

import "github.com/emufog/emufog/internal/domain/graph"

// less implements the fog-candidate selection key: lexicographic ascending
// comparison of (average_deployment_cost, average_connection_cost,
// -covered_count, node.id). Returns true iff a sorts strictly before b.
func less(a, b *candidateState) bool {
	ad, bd := a.averageDeploymentCost(), b.averageDeploymentCost()
	if ad != bd {
		return ad < bd
	}
	if a.avgConnectionCost != b.avgConnectionCost {
		return a.avgConnectionCost < b.avgConnectionCost
	}
	if a.coveredCount != b.coveredCount {
		// higher covered_count wins, i.e. sorts first
		return a.coveredCount > b.coveredCount
	}
	return a.nodeID < b.nodeID
}

// pickWinner returns the candidate with the minimal FogComparator key among
// candidates, or nil if candidates is empty.
func pickWinner(candidates map[graph.NodeID]*candidateState) *candidateState {
	var winner *candidateState
	for _, c := range candidates {
		if winner == nil || less(c, winner) {
			winner = c
		}
	}
	return winner
}
