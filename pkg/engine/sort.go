package engine

import (
	opening "github.com/notnil/chess/opening"
)

// byRisk sorts pieces from the most to the least exposed, ties keep board order
type byRisk []PieceRisk

func (a byRisk) Len() int           { return len(a) }
func (a byRisk) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byRisk) Less(i, j int) bool { return a[i].Risk < a[j].Risk }

// byOpeningLength sorts the longest, most specific opening first
type byOpeningLength []*opening.Opening

func (a byOpeningLength) Len() int           { return len(a) }
func (a byOpeningLength) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byOpeningLength) Less(i, j int) bool { return len(a[i].PGN()) > len(a[j].PGN()) }
