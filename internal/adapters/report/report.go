// Package report renders the computed leaderboards as plain text.
//
// Output goes to the writer alone (normally stdout); diagnostics travel
// on the logger's stderr stream and never interleave with the tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/chesspool/schedina/internal/domain/model"
)

const separator = "--------------------------------"

// Renderer writes leaderboard tables to a writer.
type Renderer struct {
	w io.Writer
}

// New creates a Renderer on w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RoundTables prints, per round in ascending order, the round scores
// ("Punteggi turno N", descending round score) and the running standings
// ("Classifica turno N", descending cumulative score).
func (r *Renderer) RoundTables(entries []model.RoundEntry) error {
	byRound := make(map[int][]model.RoundEntry)
	var rounds []int
	for _, e := range entries {
		if _, ok := byRound[e.Round]; !ok {
			rounds = append(rounds, e.Round)
		}
		byRound[e.Round] = append(byRound[e.Round], e)
	}
	sort.Ints(rounds)

	for _, round := range rounds {
		rows := append([]model.RoundEntry(nil), byRound[round]...)

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
		if err := r.table(fmt.Sprintf("Punteggi turno %d", round), rows, func(e model.RoundEntry) int { return e.Score }); err != nil {
			return err
		}

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Cumulative > rows[j].Cumulative })
		if err := r.table(fmt.Sprintf("Classifica turno %d", round), rows, func(e model.RoundEntry) int { return e.Cumulative }); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) table(title string, rows []model.RoundEntry, value func(model.RoundEntry) int) error {
	if _, err := fmt.Fprintf(r.w, "%s\n%s\n", separator, title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	for _, e := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", e.Author, value(e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, separator)
	return err
}

// GrandTotals prints the final combined leaderboard. Totals arrive
// already sorted by descending score.
func (r *Renderer) GrandTotals(totals []model.TotalEntry) error {
	if _, err := fmt.Fprintf(r.w, "%s\nClassifica finale\n", separator); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "autore\tschedina\ttotale\n")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", t.Author, t.RankingScore, t.Total)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, separator)
	return err
}
