package query

import (
	"testing"

	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

func buildTrades() *table.DataTable {
	cols := []table.Column{
		{Name: "id", DeclaredType: value.ColInt},
		{Name: "category", DeclaredType: value.ColStr},
		{Name: "amount", DeclaredType: value.ColFloat},
	}
	t := table.New("trades", cols)
	t.AppendRow(table.Row{value.Int(1), value.Str("food"), value.Float(12.5)})
	t.AppendRow(table.Row{value.Int(2), value.Str("rent"), value.Float(900)})
	t.AppendRow(table.Row{value.Int(3), value.Str("food"), value.Float(30)})
	return t
}

func TestExecuteFilterSortLimit(t *testing.T) {
	src := buildTrades()
	res, err := Execute(src, "select id, amount from trades where category = 'food' order by amount desc limit 1", false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.View.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", res.View.RowCount())
	}
	row, ok := res.View.GetRow(0)
	if !ok {
		t.Fatalf("GetRow(0) failed")
	}
	if row[0].I != 3 {
		t.Fatalf("expected id=3 (amount 30 > 12.5) first, got %v", row[0])
	}
}

func TestExecuteStarSelectsAllColumns(t *testing.T) {
	src := buildTrades()
	res, err := Execute(src, "select * from trades", false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.View.DisplayColumnCount() != src.ColumnCount() {
		t.Fatalf("DisplayColumnCount = %d, want %d", res.View.DisplayColumnCount(), src.ColumnCount())
	}
}

func TestExecuteUnknownTableErrors(t *testing.T) {
	src := buildTrades()
	if _, err := Execute(src, "select * from nope", false); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

// TestExecuteOrderByMultiColumnInterned covers spec scenario S4: a
// multi-column ORDER BY over an interned string column must compare by
// value, not by the pointer the Interner happened to hand out.
func TestExecuteOrderByMultiColumnInterned(t *testing.T) {
	in := value.NewInterner()
	cols := []table.Column{
		{Name: "trader", DeclaredType: value.ColStr},
		{Name: "price", DeclaredType: value.ColFloat},
	}
	src := table.New("orders", cols)
	rows := []struct {
		trader string
		price  float64
	}{
		{"Bob", 150}, {"Alice", 200}, {"Charlie", 175},
		{"Alice", 100}, {"Bob", 120}, {"Alice", 150},
	}
	for _, r := range rows {
		src.AppendRow(table.Row{in.Intern(r.trader), value.Float(r.price)})
	}

	res, err := Execute(src, "select trader, price from orders order by trader, price", false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []struct {
		trader string
		price  float64
	}{
		{"Alice", 100}, {"Alice", 150}, {"Alice", 200},
		{"Bob", 120}, {"Bob", 150},
		{"Charlie", 175},
	}
	if res.View.RowCount() != len(want) {
		t.Fatalf("RowCount = %d, want %d", res.View.RowCount(), len(want))
	}
	for i, w := range want {
		row, ok := res.View.GetRow(i)
		if !ok {
			t.Fatalf("GetRow(%d) failed", i)
		}
		if row[0].String() != w.trader || row[1].F != w.price {
			t.Fatalf("row %d = (%s, %v), want (%s, %v)", i, row[0].String(), row[1].F, w.trader, w.price)
		}
	}
}
