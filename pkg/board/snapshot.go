package board

import (
	"fmt"

	"github.com/notnil/chess"
)

// Snapshot is an immutable copy of the board, one optional piece per square
type Snapshot [NumSquares]Piece

// At returns the piece on the square, false if the square is empty or invalid
func (s Snapshot) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return NoPiece, false
	}
	p := s[sq]
	if p.Empty() {
		return NoPiece, false
	}
	return p, true
}

// With returns a copy of the snapshot with the piece placed on the square
func (s Snapshot) With(sq Square, p Piece) Snapshot {
	if sq.Valid() {
		s[sq] = p
	}
	return s
}

// Without returns a copy of the snapshot with the square emptied
func (s Snapshot) Without(sq Square) Snapshot {
	return s.With(sq, NoPiece)
}

// Count returns the number of occupied squares
func (s Snapshot) Count() int {
	n := 0
	for _, p := range s {
		if !p.Empty() {
			n++
		}
	}
	return n
}

// FromPosition copies the board of a notnil position into a snapshot
func FromPosition(pos *chess.Position) Snapshot {
	var snap Snapshot
	if pos == nil {
		return snap
	}
	b := pos.Board()
	for idx := 0; idx < NumSquares; idx++ {
		// notnil squares use the same rank*8+file layout (A1 = 0, H8 = 63)
		p := b.Piece(chess.Square(idx))
		if p == chess.NoPiece {
			continue
		}
		snap[idx] = Piece{Color: fromChessColor(p.Color()), Type: fromChessType(p.Type())}
	}
	return snap
}

// ParseFEN builds a snapshot from a FEN string
func ParseFEN(fen string) (Snapshot, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return FromPosition(chess.NewGame(opt).Position()), nil
}

func fromChessColor(c chess.Color) Color {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoColor
}

func fromChessType(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}
