package board

import "fmt"

// Weights is the material value of each piece type. The king is included since it
// takes part in the exchange heuristic.
var Weights = map[PieceType]float64{
	Pawn:   1,
	Knight: 3.5,
	Bishop: 3.5,
	Rook:   5.25,
	Queen:  10,
	King:   15,
}

// Descriptor describes one occupied square of an analyzed position
type Descriptor struct {
	Square Square
	Color  Color
	Type   PieceType
	Value  float64
	Label  string
}

// Piece returns the piece the descriptor was built from
func (d Descriptor) Piece() Piece {
	return Piece{Color: d.Color, Type: d.Type}
}

// Symbol returns the FEN letter of the described piece
func (d Descriptor) Symbol() string {
	return d.Piece().Symbol()
}

// Group returns the color group tag, "w" or "b"
func (d Descriptor) Group() string {
	return d.Color.Group()
}

// Label returns the node label of a piece on a square, e.g. "white-knight@b1".
// The square is part of the label so it is unique per position.
func Label(p Piece, sq Square) string {
	return fmt.Sprintf("%s-%s@%s", p.Color, p.Type, sq)
}

// DescribeAt returns the descriptor of the piece on sq, false if the square is empty
func DescribeAt(snap Snapshot, sq Square) (Descriptor, bool) {
	p, ok := snap.At(sq)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		Square: sq,
		Color:  p.Color,
		Type:   p.Type,
		Value:  Weights[p.Type],
		Label:  Label(p, sq),
	}, true
}

// DescribeAll returns the descriptors of every occupied square, ranks 0 to 7 and
// files 0 to 7 in row-major order
func DescribeAll(snap Snapshot) []Descriptor {
	out := make([]Descriptor, 0, 32)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq, err := NewSquare(rank, file)
			if err != nil {
				continue
			}
			d, ok := DescribeAt(snap, sq)
			if !ok {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}
