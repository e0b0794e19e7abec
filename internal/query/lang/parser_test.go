package lang

import "testing"

func TestParseBasicSelect(t *testing.T) {
	sel, err := Parse("select a, b from t where a > 1 and b like 'x%' order by a desc limit 10 offset 5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sel.From != "t" || len(sel.Columns) != 2 {
		t.Fatalf("unexpected select: %+v", sel)
	}
	if sel.Limit == nil || *sel.Limit != 10 {
		t.Fatalf("Limit = %v, want 10", sel.Limit)
	}
	if sel.Offset == nil || *sel.Offset != 5 {
		t.Fatalf("Offset = %v, want 5", sel.Offset)
	}
	if len(sel.OrderBy) != 1 || !sel.OrderBy[0].Desc {
		t.Fatalf("OrderBy = %+v", sel.OrderBy)
	}
	and, ok := sel.Where.(AndExpr)
	if !ok {
		t.Fatalf("Where root = %T, want AndExpr", sel.Where)
	}
	if _, ok := and.Left.(Comparison); !ok {
		t.Fatalf("AndExpr.Left = %T, want Comparison", and.Left)
	}
}

func TestParseStar(t *testing.T) {
	sel, err := Parse("select * from trades")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !sel.Star {
		t.Fatalf("expected Star=true")
	}
}

func TestParseBetweenAndIn(t *testing.T) {
	sel, err := Parse("select * from t where price between 1 and 10 and status in ('ok', 'pending')")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and := sel.Where.(AndExpr)
	if _, ok := and.Left.(Between); !ok {
		t.Fatalf("expected Between, got %T", and.Left)
	}
	if _, ok := and.Right.(InList); !ok {
		t.Fatalf("expected InList, got %T", and.Right)
	}
}

func TestParseIsNull(t *testing.T) {
	sel, err := Parse("select * from t where name is not null")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	isn, ok := sel.Where.(IsNull)
	if !ok || !isn.Negate {
		t.Fatalf("expected IsNull{Negate:true}, got %+v", sel.Where)
	}
}

func TestParseMethodChainAndDateTime(t *testing.T) {
	sel, err := Parse("select * from t where category.trim().toLower() = 'food' and created >= DateTime(2024, 1, 1)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and := sel.Where.(AndExpr)
	cmp, ok := and.Left.(Comparison)
	if !ok {
		t.Fatalf("expected Comparison, got %T", and.Left)
	}
	outer, ok := cmp.Left.(MethodCall)
	if !ok || outer.Method != "toLower" {
		t.Fatalf("expected outer MethodCall toLower, got %+v", cmp.Left)
	}
	inner, ok := outer.Target.(MethodCall)
	if !ok || inner.Method != "trim" {
		t.Fatalf("expected inner MethodCall trim, got %+v", outer.Target)
	}

	cmp2 := and.Right.(Comparison)
	dc, ok := cmp2.Right.(DateCtor)
	if !ok || dc.Today || len(dc.Args) != 3 {
		t.Fatalf("expected DateCtor with 3 args, got %+v", cmp2.Right)
	}
}

func TestParseDateTimeToday(t *testing.T) {
	sel, err := Parse("select * from t where created = DateTime.Today")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmp := sel.Where.(Comparison)
	dc, ok := cmp.Right.(DateCtor)
	if !ok || !dc.Today {
		t.Fatalf("expected DateCtor{Today:true}, got %+v", cmp.Right)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("select from t")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Position != 7 {
		t.Fatalf("Position = %d, want 7", pe.Position)
	}
}
