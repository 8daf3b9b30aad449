package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"go.uber.org/zap"

	"chessrisk/pkg/board"
	"chessrisk/pkg/transposition"
)

// State is the lifecycle state of an Engine
type State int

const (
	// Idle means no game is loaded
	Idle State = iota
	// GameLoaded means a game is loaded and no move was analyzed yet
	GameLoaded
	// Analyzing means at least one move was analyzed and more remain
	Analyzing
	// Done means every move of the game was analyzed
	Done
	// Aborted means a move could not be applied, the series stops before it
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case GameLoaded:
		return "loaded"
	case Analyzing:
		return "analyzing"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Analysis is the relation graphs and risks of a single position
type Analysis struct {
	Relations *Relations
	Pieces    []PieceRisk
	White     float64
	Black     float64
}

// Analyze builds the relations of a snapshot and quantifies the risk of every piece
func Analyze(snap board.Snapshot) *Analysis {
	rel := BuildRelations(snap)
	return AnalyzeRelations(rel)
}

// AnalyzeRelations quantifies already built relations, they may have been edited since
func AnalyzeRelations(rel *Relations) *Analysis {
	pieces := Assess(rel)
	risk := make(map[string]float64, len(pieces))
	for _, pr := range pieces {
		risk[pr.Piece.Label] = pr.Risk
	}
	white, black := Totals(rel, risk)
	return &Analysis{Relations: rel, Pieces: pieces, White: white, Black: black}
}

// Ply is the analysis of the position right after one move
type Ply struct {
	Number       int     // 1-based index of the move in the game
	Move         string  // the move in algebraic notation
	Opening      string  // ECO title reached so far, "" if unknown or disabled
	InBook       bool    // whether the game still follows a book line
	White        float64 // summed white risk
	Black        float64 // summed black risk
	WhiteExposed string  // most exposed attacked white piece
	BlackExposed string  // most exposed attacked black piece
}

// Report is the result of replaying one game
type Report struct {
	ID     string
	Tags   map[string]string
	Series *Series
	Plies  []Ply
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger, the default discards everything
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Logger = l
		}
	}
}

// WithOpeningBook names the opening after every move
func WithOpeningBook(b *OpeningBook) Option {
	return func(e *Engine) {
		e.Book = b
	}
}

// WithCache reuses the totals of positions already seen, possibly by other engines
func WithCache(t *transposition.Table) Option {
	return func(e *Engine) {
		e.Cache = t
	}
}

// Engine replays a game move by move and records the risk of both sides after each move
type Engine struct {
	Logger     *zap.Logger
	Book       *OpeningBook
	Cache      *transposition.Table
	Game       *chess.Game
	Simulation *chess.Game
	Series     *Series

	// relations is rebuilt on every cache miss and only describes the last position
	// that missed, so it is not exposed
	relations *Relations
	state     State
	moves     []*chess.Move
	ply       int
	report    *Report
}

// NewEngine returns an idle engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Logger:    zap.NewNop(),
		relations: NewRelations(),
		state:     Idle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	return e.state
}

// Load prepares the replay of g from its initial position
func (e *Engine) Load(g *chess.Game) error {
	if g == nil {
		return ErrMissingGameRecord
	}
	positions := g.Positions()
	if len(positions) == 0 {
		return fmt.Errorf("%w: game has no initial position", ErrMissingGameRecord)
	}
	// Start the replay from the recorded initial position
	start, err := chess.FEN(positions[0].String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingGameRecord, err)
	}
	e.Game = g
	e.Simulation = chess.NewGame(start)
	e.moves = g.Moves()
	e.ply = 0
	e.Series = NewSeries(len(e.moves))
	e.report = &Report{
		ID:     uuid.NewString(),
		Tags:   tags(g),
		Series: e.Series,
		Plies:  make([]Ply, 0, len(e.moves)),
	}
	e.state = GameLoaded
	e.Logger.Info("game loaded",
		zap.String("id", e.report.ID),
		zap.Int("moves", len(e.moves)),
		zap.String("white", e.report.Tags["White"]),
		zap.String("black", e.report.Tags["Black"]),
	)
	if len(e.moves) == 0 {
		e.state = Done
	}
	return nil
}

// Remaining returns the number of moves not analyzed yet
func (e *Engine) Remaining() int {
	return len(e.moves) - e.ply
}

// Step applies the next move and analyzes the resulting position
func (e *Engine) Step() (Ply, error) {
	if e.state != GameLoaded && e.state != Analyzing {
		return Ply{}, fmt.Errorf("%w: step in state %s", ErrInvalidState, e.state)
	}
	mv := e.moves[e.ply]
	number := e.ply + 1
	// Positions are immutable, keep the one before the move for the notation
	before := e.Simulation.Position()
	if err := e.Simulation.Move(mv); err != nil {
		e.state = Aborted
		moveErr := &MoveError{Ply: number, Move: mv.String(), Err: err}
		e.Logger.Error("move rejected", zap.Int("ply", number), zap.Error(moveErr))
		return Ply{}, moveErr
	}
	san := chess.AlgebraicNotation{}.Encode(before, mv)
	ply := e.analyzePosition(e.Simulation.Position())
	ply.Number = number
	ply.Move = san
	if e.Book != nil {
		played := e.Simulation.Moves()
		ply.Opening = e.Book.Name(played)
		op, _ := e.Book.Continuation(played)
		ply.InBook = op != nil
	}
	e.Series.Append(ply.White, ply.Black)
	e.report.Plies = append(e.report.Plies, ply)
	e.ply++
	e.state = Analyzing
	if e.ply == len(e.moves) {
		e.state = Done
	}
	e.Logger.Debug("analyzed move",
		zap.Int("ply", ply.Number),
		zap.String("move", ply.Move),
		zap.Float64("white", ply.White),
		zap.Float64("black", ply.Black),
	)
	return ply, nil
}

// Run analyzes every remaining move. A rejected move aborts the run and no report is
// returned, since the series would no longer line up with the move numbers.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if e.state == Idle {
		return nil, fmt.Errorf("%w: no game loaded", ErrInvalidState)
	}
	for e.state == GameLoaded || e.state == Analyzing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := e.Step(); err != nil {
			return nil, err
		}
	}
	if e.state != Done {
		return nil, fmt.Errorf("%w: run ended in state %s", ErrInvalidState, e.state)
	}
	return e.report, nil
}

// analyzePosition rebuilds the relations of pos or reads its totals from the cache
func (e *Engine) analyzePosition(pos *chess.Position) Ply {
	var hash [16]byte
	if e.Cache != nil {
		hash = pos.Hash()
		if entry := e.Cache.Query(hash); entry != nil {
			return Ply{
				White:        entry.White,
				Black:        entry.Black,
				WhiteExposed: entry.WhiteExposed,
				BlackExposed: entry.BlackExposed,
			}
		}
	}
	e.relations.Build(board.FromPosition(pos))
	analysis := AnalyzeRelations(e.relations)
	ply := Ply{White: analysis.White, Black: analysis.Black}
	if pr, ok := MostExposed(analysis.Pieces, board.White); ok {
		ply.WhiteExposed = pr.Piece.Label
	}
	if pr, ok := MostExposed(analysis.Pieces, board.Black); ok {
		ply.BlackExposed = pr.Piece.Label
	}
	if e.Cache != nil {
		e.Cache.Commit(hash, transposition.Entry{
			White:        ply.White,
			Black:        ply.Black,
			WhiteExposed: ply.WhiteExposed,
			BlackExposed: ply.BlackExposed,
		})
	}
	return ply
}

// LoadPGN parses every game of a PGN stream
func LoadPGN(r io.Reader) ([]*chess.Game, error) {
	if r == nil {
		return nil, ErrMissingGameRecord
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingGameRecord, err)
	}
	// The decoder emits a game after its second blank line, so the last game needs
	// exactly one trailing blank line
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMissingGameRecord)
	}
	games, err := chess.GamesFromPGN(strings.NewReader(text + "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingGameRecord, err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no games found", ErrMissingGameRecord)
	}
	return games, nil
}

func tags(g *chess.Game) map[string]string {
	out := make(map[string]string)
	for _, tp := range g.TagPairs() {
		out[tp.Key] = tp.Value
	}
	return out
}
