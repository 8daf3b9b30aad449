package engine

import (
	"sort"

	"chessrisk/pkg/board"
	"chessrisk/pkg/graph"
)

// PieceRisk is the risk of one piece together with the values it was computed from
type PieceRisk struct {
	Piece    board.Descriptor
	Threats  []float64
	Supports []float64
	Risk     float64
}

// NodeRisk approximates the outcome of an exchange on a piece of the given value.
// threats and supports are the values of its attackers and defenders.
//
// With n attackers and m defenders, both sorted ascending, the risk is
//
//	value + sum(supports[:min(n-1, m)]) - sum(threats[:m])
//
// and 0 when nothing attacks the piece. The debit takes m attackers while the credit is
// capped by n-1.
func NodeRisk(value float64, threats []float64, supports []float64) float64 {
	n := len(threats)
	if n == 0 {
		return 0
	}
	m := len(supports)
	threats = sortedCopy(threats)
	supports = sortedCopy(supports)
	// Cheapest defenders recapture first
	credit := sumFirst(supports, intMin(n-1, m))
	// Cheapest attackers are lost first
	debit := sumFirst(threats, m)
	return value + credit - debit
}

// Assess returns the risk of every piece in board order
func Assess(r *Relations) []PieceRisk {
	nodes := r.Combined.Nodes()
	out := make([]PieceRisk, 0, len(nodes))
	for _, n := range nodes {
		threats := values(r.Threat.Predecessors(n.ID))
		supports := values(r.Support.Predecessors(n.ID))
		out = append(out, PieceRisk{
			Piece:    n.Piece,
			Threats:  threats,
			Supports: supports,
			Risk:     NodeRisk(n.Piece.Value, threats, supports),
		})
	}
	return out
}

// Quantify maps every node label to its risk
func Quantify(r *Relations) map[string]float64 {
	risk := make(map[string]float64, r.Combined.NodeCount())
	for _, pr := range Assess(r) {
		risk[pr.Piece.Label] = pr.Risk
	}
	return risk
}

// Totals sums the risk of each side's pieces
func Totals(r *Relations, risk map[string]float64) (white float64, black float64) {
	for _, n := range r.Combined.Nodes() {
		switch n.Piece.Color {
		case board.White:
			white += risk[n.ID]
		case board.Black:
			black += risk[n.ID]
		}
	}
	return white, black
}

// MostExposed returns the piece with the lowest risk among the attacked pieces of the
// given color, false if none of them is attacked
func MostExposed(assessed []PieceRisk, clr board.Color) (PieceRisk, bool) {
	attacked := make([]PieceRisk, 0, len(assessed))
	for _, pr := range assessed {
		if pr.Piece.Color == clr && len(pr.Threats) > 0 {
			attacked = append(attacked, pr)
		}
	}
	if len(attacked) == 0 {
		return PieceRisk{}, false
	}
	sort.Stable(byRisk(attacked))
	return attacked[0], true
}

func values(nodes []*graph.Node) []float64 {
	out := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Piece.Value)
	}
	return out
}
