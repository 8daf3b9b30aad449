package transposition

import (
	"sync"
	"sync/atomic"
)

// Table caches the risk totals of positions that were already analyzed. It is shared
// between the engines of concurrently analyzed games.
type Table struct {
	Table  *sync.Map // position hash -> Entry
	hits   atomic.Int64
	misses atomic.Int64
}

// Entry is the cached analysis of one position
type Entry struct {
	White        float64 // summed risk of the white pieces
	Black        float64 // summed risk of the black pieces
	WhiteExposed string  // label of the most exposed white piece, "" if none is attacked
	BlackExposed string  // label of the most exposed black piece, "" if none is attacked
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{Table: &sync.Map{}}
}

// Query will perform a lookup in the table and return the entry, or nil if the
// position was never committed
func (t *Table) Query(hash [16]byte) *Entry {
	// Query the table
	v, ok := t.Table.Load(hash)
	if !ok {
		t.misses.Add(1)
		return nil
	}
	// type assert to Entry
	ret, ok := v.(Entry)
	if !ok {
		t.misses.Add(1)
		return nil
	}
	t.hits.Add(1)
	return &ret
}

// Commit stores the entry unless the position is already present
func (t *Table) Commit(hash [16]byte, entry Entry) {
	t.Table.LoadOrStore(hash, entry)
}

// Stats returns the number of hits and misses so far
func (t *Table) Stats() (hits int64, misses int64) {
	return t.hits.Load(), t.misses.Load()
}
