package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chessrisk/pkg/transposition"
)

const ruyLopezPGN = `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Alpha"]
[Black "Beta"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *
`

const twoGamesPGN = `[Event "One"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 1-0

[Event "Two"]
[White "C"]
[Black "D"]
[Result "0-1"]

1. d4 d5 0-1
`

func loadOne(t *testing.T, pgn string) *Engine {
	t.Helper()
	games, err := LoadPGN(strings.NewReader(pgn))
	require.NoError(t, err)
	require.NotEmpty(t, games)
	e := NewEngine(WithLogger(zap.NewNop()))
	require.NoError(t, e.Load(games[0]))
	return e
}

func TestEngineRunSeries(t *testing.T) {
	e := loadOne(t, ruyLopezPGN)
	assert.Equal(t, GameLoaded, e.State())
	assert.Equal(t, 6, e.Remaining())

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Done, e.State())

	require.Equal(t, 6, report.Series.Len())
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0, 3.5}, report.Series.White, 1e-9)
	// Nf3 hits the lone e5 pawn, Nc6 defends it, a6 attacks the bishop and is hit back
	assert.InDeltaSlice(t, []float64{0, 0, 1, -2.5, -2.5, -5}, report.Series.Black, 1e-9)

	require.Len(t, report.Plies, 6)
	assert.Equal(t, 1, report.Plies[0].Number)
	assert.Equal(t, "e4", report.Plies[0].Move)
	assert.Equal(t, "Nf3", report.Plies[2].Move)
	assert.Equal(t, "black-pawn@e5", report.Plies[2].BlackExposed)
	assert.Equal(t, "white-bishop@b5", report.Plies[5].WhiteExposed)
	assert.Equal(t, "Alpha", report.Tags["White"])
	assert.NotEmpty(t, report.ID)
}

func TestEngineStep(t *testing.T) {
	e := loadOne(t, ruyLopezPGN)

	ply, err := e.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, ply.Number)
	assert.Equal(t, Analyzing, e.State())
	assert.Equal(t, 5, e.Remaining())
	assert.Equal(t, 1, e.Series.Len())
}

func TestEngineStepBeforeLoad(t *testing.T) {
	e := NewEngine()
	_, err := e.Step()
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = e.Run(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestEngineLoadNil(t *testing.T) {
	e := NewEngine()
	assert.True(t, errors.Is(e.Load(nil), ErrMissingGameRecord))
	assert.Equal(t, Idle, e.State())
}

func TestEngineMoveApplicationFailure(t *testing.T) {
	e := loadOne(t, ruyLopezPGN)
	// replaying 1. e4 again for black cannot be applied
	e.moves[1] = e.moves[0]

	report, err := e.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, ErrMoveApplication))

	var moveErr *MoveError
	require.True(t, errors.As(err, &moveErr))
	assert.Equal(t, 2, moveErr.Ply)
	assert.Equal(t, Aborted, e.State())
	// the series stops at the last applied move
	assert.Equal(t, 1, e.Series.Len())

	_, err = e.Step()
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestEngineRunCancelled(t *testing.T) {
	e := loadOne(t, ruyLopezPGN)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, e.Series.Len())
}

func TestEngineCacheGivesSameSeries(t *testing.T) {
	plain := loadOne(t, ruyLopezPGN)
	want, err := plain.Run(context.Background())
	require.NoError(t, err)

	table := transposition.NewTable()
	for i := 0; i < 2; i++ {
		games, err := LoadPGN(strings.NewReader(ruyLopezPGN))
		require.NoError(t, err)
		e := NewEngine(WithCache(table))
		require.NoError(t, e.Load(games[0]))
		got, err := e.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want.Series, got.Series)
		assert.Equal(t, want.Plies[5].WhiteExposed, got.Plies[5].WhiteExposed)
	}
	hits, _ := table.Stats()
	assert.Equal(t, int64(6), hits)
}

func TestEngineOpeningNames(t *testing.T) {
	games, err := LoadPGN(strings.NewReader(ruyLopezPGN))
	require.NoError(t, err)
	e := NewEngine(WithOpeningBook(NewOpeningBook()))
	require.NoError(t, e.Load(games[0]))

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.Plies[4].Opening)
	assert.True(t, report.Plies[0].InBook)
}

func TestLoadPGNMultipleGames(t *testing.T) {
	games, err := LoadPGN(strings.NewReader(twoGamesPGN))
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Len(t, games[1].Moves(), 2)
}

func TestLoadPGNMissing(t *testing.T) {
	_, err := LoadPGN(nil)
	assert.True(t, errors.Is(err, ErrMissingGameRecord))

	_, err = LoadPGN(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrMissingGameRecord))
}

func TestMoveErrorMessage(t *testing.T) {
	err := &MoveError{Ply: 7, Move: "Nf3", Err: errors.New("chess: invalid move")}
	assert.Equal(t, `move application failed: ply 7, move "Nf3": chess: invalid move`, err.Error())
	assert.True(t, errors.Is(err, ErrMoveApplication))
}
