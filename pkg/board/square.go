package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is returned when a rank or file leaves the 0-7 range
	ErrOutOfRange = errors.New("square out of range")
	// ErrInvalidSquare is returned for a name that is not a file letter followed by a rank digit
	ErrInvalidSquare = errors.New("invalid square name")
)

// NumSquares is the number of squares on the board
const NumSquares = 64

// Square is a row-major board index, index = rank*8 + file
type Square int

// NewSquare returns the square at the given rank and file
func NewSquare(rank int, file int) (Square, error) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return 0, fmt.Errorf("%w: rank %d file %d", ErrOutOfRange, rank, file)
	}
	return Square(rank*8 + file), nil
}

// Rank returns the 0-based rank of the square
func (s Square) Rank() int {
	return int(s) / 8
}

// File returns the 0-based file of the square
func (s Square) File() int {
	return int(s) % 8
}

// Valid reports whether the square lies on the board
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// String returns the algebraic name of the square, e.g. "b1"
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string(rune('a'+s.File())) + string(rune('1'+s.Rank()))
}

// ParseSquare parses an algebraic square name such as "e4", case-insensitively
func ParseSquare(name string) (Square, error) {
	lower := strings.ToLower(name)
	if len(lower) != 2 || lower[0] < 'a' || lower[0] > 'h' || lower[1] < '1' || lower[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return NewSquare(int(lower[1]-'1'), int(lower[0]-'a'))
}
