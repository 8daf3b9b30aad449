package transposition

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAndCommit(t *testing.T) {
	table := NewTable()
	hash := [16]byte{1, 2, 3}

	assert.Nil(t, table.Query(hash))
	table.Commit(hash, Entry{White: -1.5, WhiteExposed: "white-pawn@e4"})

	got := table.Query(hash)
	require.NotNil(t, got)
	assert.Equal(t, Entry{White: -1.5, WhiteExposed: "white-pawn@e4"}, *got)

	hits, misses := table.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCommitKeepsFirstEntry(t *testing.T) {
	table := NewTable()
	hash := [16]byte{9}
	table.Commit(hash, Entry{Black: 1})
	table.Commit(hash, Entry{Black: 2})
	assert.Equal(t, 1.0, table.Query(hash).Black)
}

func TestConcurrentAccess(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hash := [16]byte{byte(j)}
				if table.Query(hash) == nil {
					table.Commit(hash, Entry{White: float64(j)})
				}
			}
		}(i)
	}
	wg.Wait()

	hits, misses := table.Stats()
	assert.Equal(t, int64(800), hits+misses)
	for j := 0; j < 100; j++ {
		assert.Equal(t, float64(j), table.Query([16]byte{byte(j)}).White)
	}
}
