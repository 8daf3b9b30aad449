package engine

import (
	"chessrisk/pkg/board"
)

// LinkFunc receives every relation found by a Scanner, origin is the scanning piece
type LinkFunc func(origin board.Descriptor, target board.Descriptor)

// Scanner finds the pieces each piece geometrically reaches on a snapshot.
// It ignores legality: checks, pins, castling and promotion play no role.
type Scanner struct {
	Snapshot board.Snapshot
	Link     LinkFunc
}

// NewScanner returns a scanner over snap reporting relations to link
func NewScanner(snap board.Snapshot, link LinkFunc) *Scanner {
	return &Scanner{Snapshot: snap, Link: link}
}

// Scan runs every piece handler for the descriptor. Only the handler matching the
// piece type does any work.
func (s *Scanner) Scan(d board.Descriptor) {
	s.pawn(d)
	s.knight(d)
	s.king(d)
	s.rook(d)
	s.bishop(d)
	s.queen(d)
}

func (s *Scanner) pawn(d board.Descriptor) {
	if d.Type != board.Pawn {
		return
	}
	forward := 1
	if d.Color == board.Black {
		forward = -1
	}
	s.scanDeltas(d, pawnOffsets(forward))
}

func (s *Scanner) knight(d board.Descriptor) {
	if d.Type != board.Knight {
		return
	}
	s.scanDeltas(d, knightOffsets)
}

func (s *Scanner) king(d board.Descriptor) {
	if d.Type != board.King {
		return
	}
	s.scanDeltas(d, kingOffsets)
}

func (s *Scanner) rook(d board.Descriptor) {
	if d.Type != board.Rook {
		return
	}
	s.scanRays(d, rookRays)
}

func (s *Scanner) bishop(d board.Descriptor) {
	if d.Type != board.Bishop {
		return
	}
	s.scanRays(d, bishopRays)
}

func (s *Scanner) queen(d board.Descriptor) {
	if d.Type != board.Queen {
		return
	}
	s.scanRays(d, queenRays)
}

// scanDeltas visits one square per offset, off-board and empty squares are skipped
func (s *Scanner) scanDeltas(d board.Descriptor, deltas []offset) {
	rank, file := d.Square.Rank(), d.Square.File()
	for _, delta := range deltas {
		sq, err := board.NewSquare(rank+delta.rank, file+delta.file)
		if err != nil {
			// off the board
			continue
		}
		other, ok := board.DescribeAt(s.Snapshot, sq)
		if !ok {
			continue
		}
		s.link(d, other)
	}
}

// scanRays walks each ray until it leaves the board or hits the first piece
func (s *Scanner) scanRays(d board.Descriptor, rays []offset) {
	rank, file := d.Square.Rank(), d.Square.File()
	for _, ray := range rays {
		for step := 1; ; step++ {
			sq, err := board.NewSquare(rank+step*ray.rank, file+step*ray.file)
			if err != nil {
				break
			}
			other, ok := board.DescribeAt(s.Snapshot, sq)
			if !ok {
				continue
			}
			// the first piece blocks the ray whether or not it is linked
			s.link(d, other)
			break
		}
	}
}

// link forwards a relation unless the target is a king of the scanning piece's own color
func (s *Scanner) link(origin board.Descriptor, target board.Descriptor) {
	if target.Type == board.King && target.Color == origin.Color {
		return
	}
	if s.Link != nil {
		s.Link(origin, target)
	}
}
