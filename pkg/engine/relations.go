package engine

import (
	"fmt"

	"chessrisk/pkg/board"
	"chessrisk/pkg/graph"
)

// Relations holds the three relation graphs of one position. All three share the
// same node set, support and threat are disjoint and both are contained in combined.
type Relations struct {
	Combined *graph.Graph
	Support  *graph.Graph
	Threat   *graph.Graph
	// bySquare maps a square index to the label of the piece on it, "" if empty
	bySquare [board.NumSquares]string
}

// NewRelations returns an empty relation set
func NewRelations() *Relations {
	return &Relations{
		Combined: graph.NewGraph(),
		Support:  graph.NewGraph(),
		Threat:   graph.NewGraph(),
	}
}

// BuildRelations returns the relation graphs of a snapshot
func BuildRelations(snap board.Snapshot) *Relations {
	r := NewRelations()
	r.Build(snap)
	return r
}

// Build clears the graphs and fills them from the snapshot
func (r *Relations) Build(snap board.Snapshot) {
	r.clear()
	// Add one node per piece to every graph
	pieces := board.DescribeAll(snap)
	for _, d := range pieces {
		r.addNode(d)
	}
	// Scan each piece and link what it reaches
	scanner := NewScanner(snap, r.link)
	for _, d := range pieces {
		scanner.Scan(d)
	}
}

// LabelAt returns the label of the node on the square
func (r *Relations) LabelAt(sq board.Square) (string, bool) {
	if !sq.Valid() || r.bySquare[sq] == "" {
		return "", false
	}
	return r.bySquare[sq], true
}

// RemovePiece drops the piece on the square and all of its relations from every graph
func (r *Relations) RemovePiece(sq board.Square) error {
	label, ok := r.LabelAt(sq)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", graph.ErrNodeNotFound, sq)
	}
	for _, g := range []*graph.Graph{r.Combined, r.Support, r.Threat} {
		if err := g.RemoveNode(label); err != nil {
			return err
		}
	}
	r.bySquare[sq] = ""
	return nil
}

// RemoveSupport drops one support edge from -> to from the support and combined graphs
func (r *Relations) RemoveSupport(from board.Square, to board.Square) error {
	return r.removeEdge(r.Support, from, to)
}

// RemoveThreat drops one threat edge from -> to from the threat and combined graphs
func (r *Relations) RemoveThreat(from board.Square, to board.Square) error {
	return r.removeEdge(r.Threat, from, to)
}

// RemoveRelation drops one edge from -> to, whichever kind it is
func (r *Relations) RemoveRelation(from board.Square, to board.Square) error {
	src, _ := r.LabelAt(from)
	dst, _ := r.LabelAt(to)
	if r.Support.HasEdge(src, dst) {
		return r.RemoveSupport(from, to)
	}
	return r.RemoveThreat(from, to)
}

func (r *Relations) removeEdge(kind *graph.Graph, from board.Square, to board.Square) error {
	src, ok := r.LabelAt(from)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", graph.ErrNodeNotFound, from)
	}
	dst, ok := r.LabelAt(to)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", graph.ErrNodeNotFound, to)
	}
	if err := kind.RemoveEdge(src, dst); err != nil {
		return err
	}
	return r.Combined.RemoveEdge(src, dst)
}

func (r *Relations) clear() {
	r.Combined.Clear()
	r.Support.Clear()
	r.Threat.Clear()
	r.bySquare = [board.NumSquares]string{}
}

func (r *Relations) addNode(d board.Descriptor) {
	// labels embed the square, so they cannot collide within one snapshot
	_, _ = r.Combined.AddNode(d)
	_, _ = r.Support.AddNode(d)
	_, _ = r.Threat.AddNode(d)
	r.bySquare[d.Square] = d.Label
}

// link classifies the relation origin -> target by color
func (r *Relations) link(origin board.Descriptor, target board.Descriptor) {
	from := r.bySquare[origin.Square]
	to := r.bySquare[target.Square]
	if from == "" || to == "" {
		return
	}
	if origin.Color == target.Color {
		_, _ = r.Support.AddEdge(from, to)
	} else {
		_, _ = r.Threat.AddEdge(from, to)
	}
	_, _ = r.Combined.AddEdge(from, to)
}
