package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chessrisk/pkg/engine"
	"chessrisk/pkg/report"
	"chessrisk/pkg/transposition"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pgn file]...",
	Short: "Replay PGN games and report the risk of both sides after every move",
	Long: `Replays every game of the given PGN files ("-" reads stdin) and records, after each
move, the summed risk of white and black together with their most exposed piece.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	flags := analyzeCmd.Flags()
	flags.Int("workers", 4, "games analyzed concurrently")
	flags.Bool("openings", true, "name the ECO opening after every move")
	flags.Bool("cache", true, "share the totals of repeated positions across games")
	flags.Bool("chart", false, "draw the risk series of each game")
	flags.Int("chart-width", 100, "chart width in columns")
	flags.Int("chart-height", 20, "chart height in rows")
	bindFlags(flags, map[string]string{
		"workers":       "workers",
		"openings":      "openings",
		"cache.enabled": "cache",
		"chart.enabled": "chart",
		"chart.width":   "chart-width",
		"chart.height":  "chart-height",
	})
	rootCmd.AddCommand(analyzeCmd)
}

// sourcedGame is a game together with where it was read from
type sourcedGame struct {
	Source string
	Index  int
	Game   *chess.Game
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	games, err := loadGames(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	logger.Info("games loaded", zap.Int("games", len(games)), zap.Strings("files", args))

	var cache *transposition.Table
	if cfg.Cache.Enabled {
		cache = transposition.NewTable()
	}
	var book *engine.OpeningBook
	if cfg.Openings {
		book = engine.NewOpeningBook()
	}

	reports, err := analyzeGames(cmd.Context(), games, book, cache)
	if err != nil {
		return err
	}
	if cache != nil {
		hits, misses := cache.Stats()
		logger.Info("position cache", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}

	out := cmd.OutOrStdout()
	if err := report.WriteGames(out, cfg.Format, reports); err != nil {
		return err
	}
	if cfg.Chart.Enabled {
		return drawCharts(out, reports)
	}
	return nil
}

// analyzeGames replays every game with its own engine, at most cfg.Workers at a time.
// The first failure cancels the remaining games.
func analyzeGames(ctx context.Context, games []sourcedGame, book *engine.OpeningBook, cache *transposition.Table) ([]*engine.Report, error) {
	reports := make([]*engine.Report, len(games))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, sg := range games {
		i, sg := i, sg
		g.Go(func() error {
			eng := engine.NewEngine(
				engine.WithLogger(logger.With(zap.String("source", sg.Source), zap.Int("game", sg.Index))),
				engine.WithOpeningBook(book),
				engine.WithCache(cache),
			)
			if err := eng.Load(sg.Game); err != nil {
				return fmt.Errorf("%s game %d: %w", sg.Source, sg.Index, err)
			}
			r, err := eng.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s game %d: %w", sg.Source, sg.Index, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// loadGames reads every game of the given files in order, "-" reads stdin
func loadGames(stdin io.Reader, paths []string) ([]sourcedGame, error) {
	var out []sourcedGame
	for _, path := range paths {
		games, err := loadFile(stdin, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i, g := range games {
			out = append(out, sourcedGame{Source: path, Index: i + 1, Game: g})
		}
	}
	return out, nil
}

func loadFile(stdin io.Reader, path string) ([]*chess.Game, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", engine.ErrMissingGameRecord)
	}
	if path == "-" {
		return engine.LoadPGN(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrMissingGameRecord, err)
	}
	defer f.Close()
	return engine.LoadPGN(f)
}

func drawCharts(w io.Writer, reports []*engine.Report) error {
	for _, r := range reports {
		chart, err := report.Chart(r.Series, cfg.Chart.Width, cfg.Chart.Height)
		if errors.Is(err, report.ErrShortSeries) || errors.Is(err, report.ErrFlatSeries) {
			logger.Info("chart skipped", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", r.ID, chart); err != nil {
			return err
		}
	}
	return nil
}
