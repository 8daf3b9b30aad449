package engine

// offset is a (delta rank, delta file) step on the board
type offset struct {
	rank int
	file int
}

// kingOffsets are the eight squares surrounding a king
var kingOffsets = []offset{
	{1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

// knightOffsets are the eight knight jumps
var knightOffsets = []offset{
	{2, 1}, {1, 2},
	{-1, 2}, {-2, 1},
	{-2, -1}, {-1, -2},
	{1, -2}, {2, -1},
}

// rookRays are the orthogonal ray directions
var rookRays = []offset{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
}

// bishopRays are the diagonal ray directions
var bishopRays = []offset{
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

// queenRays is the union of rook and bishop rays
var queenRays = []offset{
	{1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

// pawnOffsets returns the two diagonal capture squares of a pawn. Forward pushes are
// never a support or threat and are left out.
func pawnOffsets(forward int) []offset {
	return []offset{
		{forward, 1},
		{forward, -1},
	}
}
