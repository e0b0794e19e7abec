package view

import (
	"encoding/csv"
	"encoding/json"
	"io"
)

// ExportCSV writes every visible row (header plus current display
// columns, respecting sort/filter/limit/offset) as CSV, matching the
// original CLI's export_to_csv action.
func (v *DataView) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cols := v.DisplayColumns()

	header := make([]string, len(cols))
	for i, ci := range cols {
		header[i] = v.Source.Columns[ci].Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	n := v.RowCount()
	for i := 0; i < n; i++ {
		row, ok := v.GetRow(i)
		if !ok {
			continue
		}
		rec := make([]string, len(row))
		for j, cell := range row {
			rec[j] = cell.DisplayString()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes every visible row as a JSON array of objects keyed
// by column name, matching the original CLI's export_to_json action.
func (v *DataView) ExportJSON(w io.Writer) error {
	cols := v.DisplayColumns()
	names := make([]string, len(cols))
	for i, ci := range cols {
		names[i] = v.Source.Columns[ci].Name
	}

	n := v.RowCount()
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		row, ok := v.GetRow(i)
		if !ok {
			continue
		}
		rec := make(map[string]any, len(row))
		for j, cell := range row {
			if cell.IsNull() {
				rec[names[j]] = nil
				continue
			}
			rec[names[j]] = cell.DisplayString()
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
