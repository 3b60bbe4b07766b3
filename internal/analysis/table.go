package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"mutadjacency/internal/sweep"
)

// Table is an ordered collection of sweep rows for reporting. Simulation
// and heuristic rows are concatenated and distinguished by their source
// label, never merged element-wise, so the row sets may differ in length.
type Table struct {
	Rows []sweep.Point
}

// Concat builds a table from any number of row sets, preserving the order
// of each set and the order in which the sets are given.
func Concat(sets ...[]sweep.Point) Table {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	rows := make([]sweep.Point, 0, total)
	for _, s := range sets {
		rows = append(rows, s...)
	}
	return Table{Rows: rows}
}

// Failed reports how many rows carry a per-point error.
func (t Table) Failed() int {
	n := 0
	for _, r := range t.Rows {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// WriteCSV serializes the table as k,probability,source,error rows. The
// format is a convenience for downstream plotting, not a contract; failed
// rows keep an empty probability column and carry the error text.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"k", "probability", "source", "error"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range t.Rows {
		record := []string{strconv.Itoa(r.K), "", r.Source, ""}
		if r.Err != nil {
			record[3] = r.Err.Error()
		} else {
			record[1] = strconv.FormatFloat(r.Probability, 'g', 5, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row k=%d: %w", r.K, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Fprint writes a human-readable table. Failed rows print an ERROR marker
// in place of a probability.
func (t Table) Fprint(w io.Writer) {
	fmt.Fprintf(w, "%6s  %-12s  %s\n", "k", "probability", "source")
	for _, r := range t.Rows {
		if r.Err != nil {
			fmt.Fprintf(w, "%6d  %-12s  %s  (%v)\n", r.K, "ERROR", r.Source, r.Err)
			continue
		}
		fmt.Fprintf(w, "%6d  %-12.5g  %s\n", r.K, r.Probability, r.Source)
	}
}
