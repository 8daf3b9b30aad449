package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"chessrisk/pkg/board"
	"chessrisk/pkg/engine"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	cpuprofile      string
	benchFEN        string
	benchIterations int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time relation building and risk quantification",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	flags := benchCmd.Flags()
	flags.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&benchFEN, "fen", startFEN, "position whose successors are benchmarked")
	flags.IntVar(&benchIterations, "n", 100000, "positions per benchmark")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchIterations < 1 {
		return fmt.Errorf("-n must be positive, got %d", benchIterations)
	}
	// Setup Profiling
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	selection, err := benchPositions(benchFEN, benchIterations)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "----BEGIN CHESSRISK BENCHMARK----")
	benchmarkBuild(out, selection)
	benchmarkAnalyze(out, selection)
	fmt.Fprintln(out, "----END  CHESSRISK  BENCHMARK----")
	return nil
}

// benchPositions returns n snapshots drawn at random from the positions one move after fen
func benchPositions(fen string, n int) ([]board.Snapshot, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	game := chess.NewGame(opt)
	// Generate the positions reached by every valid move
	var positions []board.Snapshot
	for _, mv := range game.ValidMoves() {
		positions = append(positions, board.FromPosition(game.Position().Update(mv)))
	}
	if len(positions) == 0 {
		positions = append(positions, board.FromPosition(game.Position()))
	}
	selection := make([]board.Snapshot, n)
	for i := range selection {
		selection[i] = positions[rand.Intn(len(positions))]
	}
	return selection, nil
}

func benchmarkBuild(w io.Writer, selection []board.Snapshot) {
	fmt.Fprintf(w, "[BUILD] Building relations of %d positions\n", len(selection))
	rel := engine.NewRelations()
	start := time.Now()
	for _, snap := range selection {
		rel.Build(snap)
	}
	printRate(w, "BUILD", len(selection), time.Since(start))
}

func benchmarkAnalyze(w io.Writer, selection []board.Snapshot) {
	fmt.Fprintf(w, "[RISK] Analyzing %d positions\n", len(selection))
	start := time.Now()
	for _, snap := range selection {
		engine.Analyze(snap)
	}
	printRate(w, "RISK", len(selection), time.Since(start))
}

func printRate(w io.Writer, tag string, n int, elapsed time.Duration) {
	fmt.Fprintf(w, "[%s] %d operations completed in %v\n", tag, n, elapsed.Round(time.Millisecond))
	if elapsed > 0 {
		fmt.Fprintf(w, "[%s] That makes %.0f positions per second\n", tag, float64(n)/elapsed.Seconds())
	}
}
