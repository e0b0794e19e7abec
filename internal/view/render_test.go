package view

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

func peopleTable() *table.DataTable {
	cols := []table.Column{
		{Name: "id", DeclaredType: value.ColInt},
		{Name: "name", DeclaredType: value.ColStr},
		{Name: "score", DeclaredType: value.ColFloat, Nullable: true},
	}
	tbl := table.New("people", cols)
	tbl.AppendRow(table.Row{value.Int(1), value.Str("ada"), value.Float(9.5)})
	tbl.AppendRow(table.Row{value.Int(2), value.Str("grace"), value.Null})
	tbl.AppendRow(table.Row{value.Int(3), value.Str("alan"), value.Float(7.25)})
	return tbl
}

func TestDataView_RenderTable_Golden(t *testing.T) {
	v := New(peopleTable())

	var buf bytes.Buffer
	v.RenderTable(&buf)

	g := goldie.New(t)
	g.Assert(t, "render_table_people", buf.Bytes())
}
