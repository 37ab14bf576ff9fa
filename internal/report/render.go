package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"wasc-audit/internal/checker"
	"wasc-audit/internal/criterion"
	"wasc-audit/internal/models"
)

// Columns returns the full report column list for an executor: the fixed
// URL and error columns followed by the executor's own columns.
func Columns(exec criterion.Executor) []string {
	return append([]string{"URL", "Erreur"}, exec.Columns()...)
}

// cell returns the value of one report column for an entry. Checker columns
// of a failed download all carry the fail sentinel.
func cell(e models.Entry, col string) any {
	switch col {
	case "URL":
		return e.URL
	case "Erreur":
		return e.Err
	}
	if e.Results == nil {
		return checker.Fail
	}
	return e.Results[col]
}

// WriteJSON renders entries as indented structured text: one object per
// website label, keys in sorted order.
func WriteJSON(w io.Writer, entries []models.Entry, cols []string) error {
	out := make(map[string]map[string]any, len(entries))
	for _, e := range entries {
		row := make(map[string]any, len(cols)+1)
		for _, col := range cols {
			row[col] = cell(e, col)
		}
		if e.Summary != nil {
			row["Résumé"] = e.Summary
		}
		out[e.Label] = row
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteCSV renders entries as a ';'-delimited table, one row per website,
// preceded by a dated comment line.
func WriteCSV(w io.Writer, entries []models.Entry, cols []string) error {
	if _, err := fmt.Fprintf(w, "# %s\n", time.Now().Format("02/01/06 15:04:05")); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(append([]string{"Organisation"}, cols...)); err != nil {
		return err
	}
	for _, e := range entries {
		row := make([]string, 0, len(cols)+1)
		row = append(row, e.Label)
		for _, col := range cols {
			row = append(row, formatValue(cell(e, col)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders entries as a human-readable table.
func WriteTable(w io.Writer, entries []models.Entry, cols []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Organisation"}
	for _, col := range cols {
		header = append(header, col)
	}
	header = append(header, "Résumé")
	t.AppendHeader(header)

	for _, e := range entries {
		row := table.Row{e.Label}
		for _, col := range cols {
			row = append(row, formatValue(cell(e, col)))
		}
		resume := ""
		if e.Summary != nil {
			resume = e.Summary.Label
		}
		row = append(row, resume)
		t.AppendRow(row)
	}
	t.Render()
}

// formatValue flattens a result into a cell string. Nested criterion maps
// are rendered as compact JSON so the tabular forms stay one row per
// website.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
