// Package report renders game and position analyses as text, JSON, YAML or CSV
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	tm "github.com/buger/goterm"
	"gopkg.in/yaml.v3"

	"chessrisk/pkg/config"
	"chessrisk/pkg/engine"
)

// ErrUnknownFormat is returned for a format no writer handles
var ErrUnknownFormat = errors.New("unknown output format")

type PlyDoc struct {
	Ply          int     `json:"ply" yaml:"ply"`
	Move         string  `json:"move" yaml:"move"`
	Opening      string  `json:"opening,omitempty" yaml:"opening,omitempty"`
	InBook       bool    `json:"in_book" yaml:"in_book"`
	White        float64 `json:"white" yaml:"white"`
	Black        float64 `json:"black" yaml:"black"`
	WhiteExposed string  `json:"white_exposed,omitempty" yaml:"white_exposed,omitempty"`
	BlackExposed string  `json:"black_exposed,omitempty" yaml:"black_exposed,omitempty"`
}

// Peak is the highest total one side reached and the ply it was reached on
type Peak struct {
	Ply  int     `json:"ply" yaml:"ply"`
	Risk float64 `json:"risk" yaml:"risk"`
}

type GameDoc struct {
	ID        string            `json:"id" yaml:"id"`
	Tags      map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Moves     int               `json:"moves" yaml:"moves"`
	WhitePeak Peak              `json:"white_peak" yaml:"white_peak"`
	BlackPeak Peak              `json:"black_peak" yaml:"black_peak"`
	Plies     []PlyDoc          `json:"plies" yaml:"plies"`
}

// NewGameDoc flattens a report into its serializable form
func NewGameDoc(r *engine.Report) GameDoc {
	doc := GameDoc{
		ID:    r.ID,
		Tags:  r.Tags,
		Moves: len(r.Plies),
		Plies: make([]PlyDoc, 0, len(r.Plies)),
	}
	for i, p := range r.Plies {
		doc.Plies = append(doc.Plies, PlyDoc{
			Ply:          p.Number,
			Move:         p.Move,
			Opening:      p.Opening,
			InBook:       p.InBook,
			White:        p.White,
			Black:        p.Black,
			WhiteExposed: p.WhiteExposed,
			BlackExposed: p.BlackExposed,
		})
		if i == 0 || p.White > doc.WhitePeak.Risk {
			doc.WhitePeak = Peak{Ply: p.Number, Risk: p.White}
		}
		if i == 0 || p.Black > doc.BlackPeak.Risk {
			doc.BlackPeak = Peak{Ply: p.Number, Risk: p.Black}
		}
	}
	return doc
}

// WriteGames writes every report to w in the given format
func WriteGames(w io.Writer, format string, reports []*engine.Report) error {
	docs := make([]GameDoc, 0, len(reports))
	for _, r := range reports {
		docs = append(docs, NewGameDoc(r))
	}
	switch format {
	case config.FormatText:
		return writeGamesText(w, docs)
	case config.FormatJSON:
		return writeJSON(w, docs)
	case config.FormatYAML:
		return WriteYAML(w, docs)
	case config.FormatCSV:
		return writeGamesCSV(w, docs)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteYAML encodes v as a YAML document
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var gameColumns = []string{"game", "ply", "move", "opening", "in_book", "white", "black", "white_exposed", "black_exposed"}

func writeGamesCSV(w io.Writer, docs []GameDoc) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gameColumns); err != nil {
		return err
	}
	for _, doc := range docs {
		for _, p := range doc.Plies {
			row := []string{
				doc.ID,
				strconv.Itoa(p.Ply),
				p.Move,
				p.Opening,
				strconv.FormatBool(p.InBook),
				formatFloat(p.White),
				formatFloat(p.Black),
				p.WhiteExposed,
				p.BlackExposed,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeGamesText(w io.Writer, docs []GameDoc) error {
	for _, doc := range docs {
		header := fmt.Sprintf("[%s] %s vs %s, %d moves", doc.ID, tagOr(doc.Tags, "White"), tagOr(doc.Tags, "Black"), doc.Moves)
		if _, err := fmt.Fprintln(w, tm.Bold(header)); err != nil {
			return err
		}
		table := tm.NewTable(0, 8, 2, ' ', 0)
		fmt.Fprintf(table, "Ply\tMove\tWhite\tBlack\tWhite exposed\tBlack exposed\tOpening\n")
		for _, p := range doc.Plies {
			fmt.Fprintf(table, "%d\t%s\t%.2f\t%.2f\t%s\t%s\t%s\n",
				p.Ply, p.Move, p.White, p.Black, dash(p.WhiteExposed), dash(p.BlackExposed), dash(p.Opening))
		}
		if _, err := io.WriteString(w, table.String()); err != nil {
			return err
		}
		if doc.Moves > 0 {
			fmt.Fprintf(w, "peak white %.2f at ply %d, peak black %.2f at ply %d\n\n",
				doc.WhitePeak.Risk, doc.WhitePeak.Ply, doc.BlackPeak.Risk, doc.BlackPeak.Ply)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tagOr(tags map[string]string, key string) string {
	if v, ok := tags[key]; ok && v != "" {
		return v
	}
	return "?"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
