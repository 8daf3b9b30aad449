package board

import "strings"

// Color is the side a piece belongs to
type Color int8

const (
	// NoColor marks an empty square
	NoColor Color = iota
	// White moves up the board
	White
	// Black moves down the board
	Black
)

// String returns the lower case color name
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Group returns the short group tag used to colour nodes, "w" or "b"
func (c Color) Group() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return ""
}

// PieceType is the kind of a piece
type PieceType int8

const (
	// NoPieceType marks an empty square
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

var pieceTypeSymbols = [...]string{"", "p", "n", "b", "r", "q", "k"}

// String returns the lower case piece type name
func (t PieceType) String() string {
	if t < 0 || int(t) >= len(pieceTypeNames) {
		return "none"
	}
	return pieceTypeNames[t]
}

// Piece is the content of one square, the zero value is an empty square
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece is the empty square
var NoPiece = Piece{}

// Empty reports whether the piece marks an empty square
func (p Piece) Empty() bool {
	return p.Type == NoPieceType || p.Color == NoColor
}

// Symbol returns the FEN letter of the piece, upper case for white
func (p Piece) Symbol() string {
	if p.Empty() || int(p.Type) >= len(pieceTypeSymbols) {
		return ""
	}
	if p.Color == White {
		return strings.ToUpper(pieceTypeSymbols[p.Type])
	}
	return pieceTypeSymbols[p.Type]
}
