package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingGameRecord indicates there is no game to analyze
	ErrMissingGameRecord = errors.New("missing game record")

	// ErrMoveApplication indicates the rules engine rejected a replayed move
	ErrMoveApplication = errors.New("move application failed")

	// ErrInvalidState indicates an operation was called in the wrong engine state
	ErrInvalidState = errors.New("invalid engine state")
)

// MoveError is a replay failure at a given ply. The analysis of the game stops there.
type MoveError struct {
	Ply  int    // 1-based move number that failed
	Move string // the move as recorded in the game
	Err  error  // the rules engine error
}

// Error returns the ply, the move and the cause
func (e *MoveError) Error() string {
	return fmt.Sprintf("%v: ply %d, move %q: %v", ErrMoveApplication, e.Ply, e.Move, e.Err)
}

// Is matches ErrMoveApplication
func (e *MoveError) Is(target error) bool {
	return target == ErrMoveApplication
}

// Unwrap returns the rules engine error
func (e *MoveError) Unwrap() error {
	return e.Err
}
