package engine

// Series is the risk of both sides over a game, entry i is the position after move i+1
type Series struct {
	White []float64
	Black []float64
}

// NewSeries returns an empty series with room for n moves
func NewSeries(n int) *Series {
	return &Series{
		White: make([]float64, 0, n),
		Black: make([]float64, 0, n),
	}
}

// Append records the totals after one more move
func (s *Series) Append(white float64, black float64) {
	s.White = append(s.White, white)
	s.Black = append(s.Black, black)
}

// Len returns the number of recorded moves
func (s *Series) Len() int {
	return len(s.White)
}

// At returns the totals after move i+1
func (s *Series) At(i int) (white float64, black float64) {
	return s.White[i], s.Black[i]
}
