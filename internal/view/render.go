package view

import (
	"fmt"
	"io"
	"strings"
)

// RenderTable writes a plain, column-aligned text table of v's current
// display columns and rows, for the headless `qtab query` CLI path
// (spec §6.2) where no terminal UI is involved.
func (v *DataView) RenderTable(w io.Writer) {
	cols := v.DisplayColumns()
	n := v.RowCount()

	headers := make([]string, len(cols))
	widths := make([]int, len(cols))
	for i, ci := range cols {
		headers[i] = v.Source.Columns[ci].Name
		widths[i] = len(headers[i])
	}

	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row, ok := v.GetRow(i)
		if !ok {
			continue
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			s := cell.DisplayString()
			if cell.IsNull() {
				s = "NULL"
			}
			cells[j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
		rows[i] = cells
	}

	writeRow(w, headers, widths)
	var sep strings.Builder
	for i, wid := range widths {
		if i > 0 {
			sep.WriteString("  ")
		}
		sep.WriteString(strings.Repeat("-", wid))
	}
	fmt.Fprintln(w, sep.String())

	for _, cells := range rows {
		writeRow(w, cells, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		if pad := widths[i] - len(c); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	fmt.Fprintln(w, b.String())
}
