package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	tm "github.com/buger/goterm"

	"chessrisk/pkg/config"
	"chessrisk/pkg/engine"
	"chessrisk/pkg/graph"
)

// Edge kinds
const (
	KindSupport = "support"
	KindThreat  = "threat"
)

type PieceDoc struct {
	Label    string    `json:"label" yaml:"label"`
	Square   string    `json:"square" yaml:"square"`
	Group    string    `json:"group" yaml:"group"`
	Symbol   string    `json:"symbol" yaml:"symbol"`
	Value    float64   `json:"value" yaml:"value"`
	Threats  []float64 `json:"threats,omitempty" yaml:"threats,omitempty,flow"`
	Supports []float64 `json:"supports,omitempty" yaml:"supports,omitempty,flow"`
	Risk     float64   `json:"risk" yaml:"risk"`
}

type EdgeDoc struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind" yaml:"kind"`
}

type PositionDoc struct {
	FEN    string     `json:"fen,omitempty" yaml:"fen,omitempty"`
	White  float64    `json:"white" yaml:"white"`
	Black  float64    `json:"black" yaml:"black"`
	Pieces []PieceDoc `json:"pieces" yaml:"pieces"`
	Edges  []EdgeDoc  `json:"edges" yaml:"edges"`
}

// NewPositionDoc flattens an analysis, pieces stay in board order and edges are sorted
func NewPositionDoc(fen string, a *engine.Analysis) PositionDoc {
	doc := PositionDoc{
		FEN:    fen,
		White:  a.White,
		Black:  a.Black,
		Pieces: make([]PieceDoc, 0, len(a.Pieces)),
	}
	for _, pr := range a.Pieces {
		doc.Pieces = append(doc.Pieces, PieceDoc{
			Label:    pr.Piece.Label,
			Square:   pr.Piece.Square.String(),
			Group:    pr.Piece.Group(),
			Symbol:   pr.Piece.Symbol(),
			Value:    pr.Piece.Value,
			Threats:  pr.Threats,
			Supports: pr.Supports,
			Risk:     pr.Risk,
		})
	}
	doc.Edges = append(edgeDocs(a.Relations.Support, KindSupport), edgeDocs(a.Relations.Threat, KindThreat)...)
	sort.SliceStable(doc.Edges, func(i, j int) bool {
		if doc.Edges[i].From != doc.Edges[j].From {
			return doc.Edges[i].From < doc.Edges[j].From
		}
		return doc.Edges[i].To < doc.Edges[j].To
	})
	return doc
}

func edgeDocs(g *graph.Graph, kind string) []EdgeDoc {
	out := make([]EdgeDoc, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		out = append(out, EdgeDoc{From: e.From, To: e.To, Kind: kind})
	}
	return out
}

// WritePosition writes a single position analysis to w in the given format
func WritePosition(w io.Writer, format string, doc PositionDoc) error {
	switch format {
	case config.FormatText:
		return writePositionText(w, doc)
	case config.FormatJSON:
		return writeJSON(w, doc)
	case config.FormatYAML:
		return WriteYAML(w, doc)
	case config.FormatCSV:
		return writePositionCSV(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// CSV has no room for the edge list, only pieces are written
func writePositionCSV(w io.Writer, doc PositionDoc) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "square", "group", "symbol", "value", "threats", "supports", "risk"}); err != nil {
		return err
	}
	for _, p := range doc.Pieces {
		row := []string{p.Label, p.Square, p.Group, p.Symbol, formatFloat(p.Value), joinFloats(p.Threats), joinFloats(p.Supports), formatFloat(p.Risk)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePositionText(w io.Writer, doc PositionDoc) error {
	if doc.FEN != "" {
		fmt.Fprintln(w, tm.Bold(doc.FEN))
	}
	pieces := tm.NewTable(0, 8, 2, ' ', 0)
	fmt.Fprintf(pieces, "Piece\tSym\tValue\tThreats\tSupports\tRisk\n")
	for _, p := range doc.Pieces {
		fmt.Fprintf(pieces, "%s\t%s\t%.2f\t%s\t%s\t%.2f\n", p.Label, p.Symbol, p.Value, dash(joinFloats(p.Threats)), dash(joinFloats(p.Supports)), p.Risk)
	}
	if _, err := io.WriteString(w, pieces.String()); err != nil {
		return err
	}

	fmt.Fprintln(w)
	edges := tm.NewTable(0, 8, 2, ' ', 0)
	fmt.Fprintf(edges, "From\tTo\tKind\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(edges, "%s\t%s\t%s\n", e.From, e.To, e.Kind)
	}
	if _, err := io.WriteString(w, edges.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nwhite %.2f, black %.2f\n", doc.White, doc.Black)
	return err
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}
