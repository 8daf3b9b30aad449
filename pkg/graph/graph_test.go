package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessrisk/pkg/board"
)

func piece(label string, sq board.Square, c board.Color, t board.PieceType) board.Descriptor {
	return board.Descriptor{Square: sq, Color: c, Type: t, Value: board.Weights[t], Label: label}
}

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	for _, d := range []board.Descriptor{
		piece("a", 0, board.White, board.Rook),
		piece("b", 8, board.White, board.Knight),
		piece("c", 32, board.Black, board.Bishop),
	} {
		_, err := g.AddNode(d)
		require.NoError(t, err)
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := newTestGraph(t)
	assert.Equal(t, 3, g.NodeCount())

	_, err := g.AddNode(piece("a", 5, board.White, board.Pawn))
	assert.True(t, errors.Is(err, ErrDuplicateNode))
	_, err = g.AddNode(piece("d", 8, board.Black, board.Pawn))
	assert.True(t, errors.Is(err, ErrDuplicateNode))
	assert.Equal(t, 3, g.NodeCount())

	n, ok := g.Node("b")
	require.True(t, ok)
	assert.Equal(t, board.Knight, n.Piece.Type)

	ids := []string{}
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestAddEdge(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.AddEdge("a", "b")
	require.NoError(t, err)
	assert.True(t, g.HasEdge("a", "b"))
	assert.False(t, g.HasEdge("b", "a"))
	assert.Equal(t, 1, g.InDegree("b"))
	assert.Equal(t, 0, g.InDegree("a"))

	_, err = g.AddEdge("a", "missing")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	_, err = g.AddEdge("missing", "a")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestParallelEdgesAreKept(t *testing.T) {
	g := newTestGraph(t)
	_, err := g.AddEdge("a", "c")
	require.NoError(t, err)
	_, err = g.AddEdge("a", "c")
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 2, g.InDegree("c"))
	preds := g.Predecessors("c")
	require.Len(t, preds, 2)
	assert.Equal(t, "a", preds[0].ID)
	assert.Equal(t, "a", preds[1].ID)
}

func TestRemoveEdge(t *testing.T) {
	g := newTestGraph(t)
	_, _ = g.AddEdge("a", "c")
	_, _ = g.AddEdge("a", "c")

	require.NoError(t, g.RemoveEdge("a", "c"))
	assert.Equal(t, 1, g.InDegree("c"))
	require.NoError(t, g.RemoveEdge("a", "c"))
	assert.False(t, g.HasEdge("a", "c"))

	err := g.RemoveEdge("a", "c")
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
	err = g.RemoveEdge("a", "missing")
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
}

func TestEdgesOrderedBySquare(t *testing.T) {
	g := newTestGraph(t)
	_, _ = g.AddEdge("c", "a")
	_, _ = g.AddEdge("a", "c")
	_, _ = g.AddEdge("b", "c")
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("a", "c")

	assert.Equal(t, []*Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "a", To: "c"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	}, g.Edges())

	preds := []string{}
	for _, n := range g.Predecessors("c") {
		preds = append(preds, n.ID)
	}
	assert.Equal(t, []string{"a", "a", "b"}, preds)
}

func TestRemoveNode(t *testing.T) {
	g := newTestGraph(t)
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("c", "b")
	_, _ = g.AddEdge("b", "c")

	require.NoError(t, g.RemoveNode("b"))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.HasEdge("a", "b"))
	assert.Equal(t, 0, g.InDegree("c"))
	assert.Empty(t, g.Predecessors("c"))
	_, ok := g.Node("b")
	assert.False(t, ok)

	assert.True(t, errors.Is(g.RemoveNode("b"), ErrNodeNotFound))
}

func TestClear(t *testing.T) {
	g := newTestGraph(t)
	_, _ = g.AddEdge("a", "b")
	g.Clear()
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Edges())
	assert.Nil(t, g.Predecessors("a"))

	// cleared squares can be reused
	_, err := g.AddNode(piece("a", 0, board.White, board.Rook))
	assert.NoError(t, err)
}
