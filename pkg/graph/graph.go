// Package graph stores the pieces of one position in a directed multigraph.
//
// Storage is a gonum multi.DirectedGraph. Nodes are keyed by piece label on the
// outside and by square index inside gonum, so iterating in id order visits pieces in
// row-major board order. Parallel edges between the same pair of nodes are separate
// gonum lines, so in-degree counts every added edge.
//
// A Graph is not safe for concurrent use. It is owned by one analysis session and is
// cleared and refilled for every position.
package graph

import (
	"fmt"
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"chessrisk/pkg/board"
)

// Edge is a directed relation between two pieces
type Edge struct {
	// From is the label of the piece giving support or making the threat.
	From string

	// To is the label of the piece receiving it.
	To string

	// Weight is reserved, relations are unweighted and it is always 0.
	Weight float64
}

// Node is one piece in the graph
type Node struct {
	ID    string
	Piece board.Descriptor
}

// vertex carries a Node through gonum, its id is the square of the piece
type vertex struct {
	node *Node
}

func (v vertex) ID() int64 {
	return int64(v.node.Piece.Square)
}

// Graph is a directed multigraph over piece descriptors
type Graph struct {
	g   *multi.DirectedGraph
	ids map[string]int64 // label -> square
}

// NewGraph returns an empty graph
func NewGraph() *Graph {
	return &Graph{
		g:   multi.NewDirectedGraph(),
		ids: make(map[string]int64),
	}
}

// Clear removes every node and edge
func (g *Graph) Clear() {
	g.g = multi.NewDirectedGraph()
	g.ids = make(map[string]int64)
}

// AddNode inserts a node for the descriptor. Labels and squares must both be unique.
func (g *Graph) AddNode(d board.Descriptor) (*Node, error) {
	if _, exists := g.ids[d.Label]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, d.Label)
	}
	v := vertex{node: &Node{ID: d.Label, Piece: d}}
	if g.g.Node(v.ID()) != nil {
		return nil, fmt.Errorf("%w: square %s already holds a node", ErrDuplicateNode, d.Square)
	}
	g.g.AddNode(v)
	g.ids[d.Label] = v.ID()
	return v.node, nil
}

// AddEdge adds a directed edge from -> to. Adding the same pair twice stores two edges.
func (g *Graph) AddEdge(from string, to string) (*Edge, error) {
	fid, ok := g.ids[from]
	if !ok {
		return nil, fmt.Errorf("%w: source %s", ErrNodeNotFound, from)
	}
	tid, ok := g.ids[to]
	if !ok {
		return nil, fmt.Errorf("%w: target %s", ErrNodeNotFound, to)
	}
	g.g.SetLine(g.g.NewLine(g.g.Node(fid), g.g.Node(tid)))
	return &Edge{From: from, To: to}, nil
}

// RemoveEdge removes one edge from -> to
func (g *Graph) RemoveEdge(from string, to string) error {
	fid, fok := g.ids[from]
	tid, tok := g.ids[to]
	if !fok || !tok {
		return fmt.Errorf("%w: %s -> %s", ErrEdgeNotFound, from, to)
	}
	lines := gograph.LinesOf(g.g.Lines(fid, tid))
	if len(lines) == 0 {
		return fmt.Errorf("%w: %s -> %s", ErrEdgeNotFound, from, to)
	}
	g.g.RemoveLine(fid, tid, lines[0].ID())
	return nil
}

// RemoveNode removes a node and every edge touching it
func (g *Graph) RemoveNode(id string) error {
	nid, ok := g.ids[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	g.g.RemoveNode(nid)
	delete(g.ids, id)
	return nil
}

// Node returns the node with the given label
func (g *Graph) Node(id string) (*Node, bool) {
	nid, ok := g.ids[id]
	if !ok {
		return nil, false
	}
	return g.g.Node(nid).(vertex).node, true
}

// Nodes returns the nodes in square order
func (g *Graph) Nodes() []*Node {
	return sortedNodes(g.g.Nodes())
}

// Edges returns every edge, parallel edges repeated, ordered by source then target square
func (g *Graph) Edges() []*Edge {
	var grouped []multi.Edge
	for it := g.g.Edges(); it.Next(); {
		grouped = append(grouped, it.Edge().(multi.Edge))
	}
	sort.Slice(grouped, func(i, j int) bool {
		if a, b := grouped[i].F.ID(), grouped[j].F.ID(); a != b {
			return a < b
		}
		return grouped[i].T.ID() < grouped[j].T.ID()
	})
	var out []*Edge
	for _, e := range grouped {
		from := e.F.(vertex).node.ID
		to := e.T.(vertex).node.ID
		for n := e.Lines.Len(); n > 0; n-- {
			out = append(out, &Edge{From: from, To: to})
		}
	}
	return out
}

// HasEdge reports whether at least one edge from -> to exists
func (g *Graph) HasEdge(from string, to string) bool {
	fid, fok := g.ids[from]
	tid, tok := g.ids[to]
	return fok && tok && g.g.HasEdgeFromTo(fid, tid)
}

// Predecessors returns the source node of every incoming edge of id, one entry per edge,
// in square order
func (g *Graph) Predecessors(id string) []*Node {
	nid, ok := g.ids[id]
	if !ok {
		return nil
	}
	var out []*Node
	for _, n := range sortedNodes(g.g.To(nid)) {
		for k := g.g.Lines(g.ids[n.ID], nid).Len(); k > 0; k-- {
			out = append(out, n)
		}
	}
	return out
}

// InDegree returns the number of incoming edges of id
func (g *Graph) InDegree(id string) int {
	return len(g.Predecessors(id))
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of edges, parallel edges included
func (g *Graph) EdgeCount() int {
	count := 0
	for it := g.g.Edges(); it.Next(); {
		count += it.Edge().(multi.Edge).Lines.Len()
	}
	return count
}

func sortedNodes(it gograph.Nodes) []*Node {
	out := make([]*Node, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().(vertex).node)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Piece.Square < out[j].Piece.Square
	})
	return out
}
