// Package table holds the name → distance result table and renders it as CSV
// or as an aligned console listing.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
)

// Column headers of the rendered table.
const (
	NameColumn     = "name"
	DistanceColumn = "distance"
)

// Row is one entry of the table.
type Row struct {
	Name     string
	Distance float64 // kilometers
}

// Table is an ordered set of rows keyed by name.
type Table struct {
	rows  []Row
	index map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Set records the distance for name. An existing row is updated in place and
// keeps its position; a new name is appended.
func (t *Table) Set(name string, distance float64) {
	if i, ok := t.index[name]; ok {
		t.rows[i].Distance = distance
		return
	}
	t.index[name] = len(t.rows)
	t.rows = append(t.rows, Row{Name: name, Distance: distance})
}

// Get returns the distance recorded for name.
func (t *Table) Get(name string) (float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.rows[i].Distance, true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the rows in their current order.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

// Sort orders rows ascending by distance. Rows with equal distance keep their
// insertion order.
func (t *Table) Sort() {
	slices.SortStableFunc(t.rows, func(a, b Row) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	for i, r := range t.rows {
		t.index[r.Name] = i
	}
}

// WriteCSV writes a header row followed by one row per entry.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{NameColumn, DistanceColumn}); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	for _, r := range t.rows {
		if err := cw.Write([]string{r.Name, FormatDistance(r.Distance)}); err != nil {
			return eris.Wrapf(err, "table: write row %q", r.Name)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "table: flush csv")
	}
	return nil
}

// Save renders the table as CSV and writes it to path, replacing any
// existing file.
func (t *Table) Save(path string) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "table: write %s", path)
	}
	return nil
}

// Print writes an aligned listing of the table to w.
func (t *Table) Print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", NameColumn, DistanceColumn)
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", strings.Repeat("-", len(NameColumn)), strings.Repeat("-", len(DistanceColumn)))
	for _, r := range t.rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", r.Name, FormatDistance(r.Distance))
	}
	_ = tw.Flush()
}

// FormatDistance formats d with the fewest digits that round-trip, always
// keeping a decimal point (0 → "0.0").
func FormatDistance(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
