package engine

import (
	"sort"

	"github.com/notnil/chess"
	opening "github.com/notnil/chess/opening"
)

// OpeningBook names the ECO opening a game is in
type OpeningBook struct {
	ECO *opening.BookECO
}

// NewOpeningBook loads the ECO book
func NewOpeningBook() *OpeningBook {
	return &OpeningBook{ECO: opening.NewBookECO()}
}

// Name returns the title of the deepest opening the moves have reached, "" if none
func (b *OpeningBook) Name(moves []*chess.Move) string {
	op := b.ECO.Find(moves)
	if op == nil {
		return ""
	}
	return op.Title()
}

// Continuation returns the longest book line that still follows the moves together
// with its next move, nil if the game has left the book
func (b *OpeningBook) Continuation(moves []*chess.Move) (*opening.Opening, *chess.Move) {
	moveIndex := len(moves)
	openings := b.ECO.Possible(moves)
	sort.Sort(byOpeningLength(openings))
	for _, op := range openings {
		bookMoves := op.Game().Moves()
		if len(bookMoves) <= moveIndex {
			continue
		}
		usable := true
		for idx, mv := range moves {
			if bookMoves[idx].String() != mv.String() {
				usable = false
				break
			}
		}
		if usable {
			return op, bookMoves[moveIndex]
		}
	}
	return nil, nil
}
