package report

import (
	"errors"
	"fmt"

	tm "github.com/buger/goterm"

	"chessrisk/pkg/engine"
)

var (
	// ErrShortSeries is returned when a series has fewer than two plies
	ErrShortSeries = errors.New("series too short to chart")
	// ErrFlatSeries is returned when both sides stay at zero for the whole game
	ErrFlatSeries = errors.New("series is zero everywhere")
)

// Chart draws both risk series as a terminal line chart, the x axis is the ply number
func Chart(s *engine.Series, width, height int) (string, error) {
	if s == nil || s.Len() < 2 {
		return "", ErrShortSeries
	}
	flat := true
	data := new(tm.DataTable)
	data.AddColumn("ply")
	data.AddColumn("white")
	data.AddColumn("black")
	for i := 0; i < s.Len(); i++ {
		white, black := s.At(i)
		if white != 0 || black != 0 {
			flat = false
		}
		data.AddRow(float64(i+1), white, black)
	}
	// the chart scales by the y range, an all zero series has none
	if flat {
		return "", fmt.Errorf("%w: %d plies", ErrFlatSeries, s.Len())
	}
	chart := tm.NewLineChart(width, height)
	return chart.Draw(data), nil
}
