package eval

import (
	"testing"

	"github.com/halprin/qtab/internal/query/lang"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

func schema() *table.DataTable {
	cols := []table.Column{
		{Name: "amount", DeclaredType: value.ColFloat},
		{Name: "category", DeclaredType: value.ColStr},
		{Name: "created", DeclaredType: value.ColDateTime},
	}
	return table.New("t", cols)
}

func mustParseWhere(t *testing.T, sql string) lang.Expr {
	t.Helper()
	sel, err := lang.Parse(sql)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return sel.Where
}

// S1: numeric column compared against a string literal coerces the
// numeric side to its display string.
func TestNumericStringCoercion(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	row := table.Row{value.Float(20.5), value.Str("food"), value.Null}
	expr := mustParseWhere(t, "select * from t where amount = '20.5'")
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected numeric-vs-string coercion to match")
	}
}

// S2: a DateTime column compares correctly against a DateTime(...)
// constructor literal.
func TestDateTimeComparison(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	created, ok := value.ParseDateTime("2024-06-01")
	if !ok {
		t.Fatalf("ParseDateTime failed for fixture date")
	}
	row := table.Row{value.Float(1), value.Str("x"), value.DateTime(created)}
	expr := mustParseWhere(t, "select * from t where created >= DateTime(2024, 1, 1)")
	matched, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !matched {
		t.Fatalf("expected created >= 2024-01-01 to match")
	}
}

func TestBetweenInclusive(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	row := table.Row{value.Float(5), value.Str("x"), value.Null}
	expr := mustParseWhere(t, "select * from t where amount between 1 and 5")
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected 5 between 1 and 5 to be inclusive")
	}
}

func TestInListNegate(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	row := table.Row{value.Float(1), value.Str("meat"), value.Null}
	expr := mustParseWhere(t, "select * from t where category not in ('veg', 'fruit')")
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected category NOT IN to match when absent")
	}
}

func TestIsNullNoThreeValuedLogic(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	row := table.Row{value.Null, value.Str("x"), value.Null}
	expr := mustParseWhere(t, "select * from t where amount is null")
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected IS NULL to match a null amount")
	}
}

// S1: a method predicate on a non-string column operates on its
// coerced display text rather than erroring (price.Contains('.')
// matches rows whose display form has a decimal point).
func TestMethodCallOnNumericCoercesToDisplayString(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	expr := mustParseWhere(t, "select * from t where amount.contains('.')")

	cases := []struct {
		amount float64
		want   bool
	}{
		{10.5, true},
		{20.0, false},
		{15.75, true},
		{100, false},
	}
	for _, c := range cases {
		row := table.Row{value.Float(c.amount), value.Str("x"), value.Null}
		ok, err := e.Matches(row, expr)
		if err != nil {
			t.Fatalf("Matches(%v): %v", c.amount, err)
		}
		if ok != c.want {
			t.Fatalf("amount=%v Contains('.') = %v, want %v", c.amount, ok, c.want)
		}
	}
}

// Contains/StartsWith/EndsWith default to case-insensitive per spec,
// and only match case-sensitively when the evaluator opts in.
func TestContainsCaseSensitivityDefault(t *testing.T) {
	s := schema()
	row := table.Row{value.Float(1), value.Str("FOOD"), value.Null}
	expr := mustParseWhere(t, "select * from t where category.contains('food')")

	e := NewEvaluator(s)
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected default case-insensitive Contains to match")
	}

	e.CaseSensitive = true
	ok, err = e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if ok {
		t.Fatalf("expected case-sensitive Contains not to match differing case")
	}
}

func TestMethodChainTrimToLower(t *testing.T) {
	s := schema()
	e := NewEvaluator(s)
	row := table.Row{value.Float(1), value.Str("  FOOD  "), value.Null}
	expr := mustParseWhere(t, "select * from t where category.trim().toLower() = 'food'")
	ok, err := e.Matches(row, expr)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !ok {
		t.Fatalf("expected trimmed/lowercased match")
	}
}
