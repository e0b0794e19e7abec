// Package eval walks a parsed query.lang.AST against a table row,
// applying the coercion rules of spec §4.4.
package eval

import (
	"fmt"
	"strings"
	"time"

	"github.com/halprin/qtab/internal/query/lang"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

// EvalError is returned for a single row that fails to evaluate (a
// malformed DateTime argument, ...); a method call on a non-string
// column is not one of these, it operates on the display string. Per spec §4.4 such rows are excluded from the result rather
// than aborting the whole query; the engine accumulates these and
// surfaces a summary in the buffer's status message.
type EvalError struct {
	RowIndex int
	Reason   string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex, e.Reason)
}

// Evaluator holds per-Execute-call state: today's date is computed at
// most once and reused for every DateTime.Today reference in the
// query, per spec §4.4's Open Question resolution (local midnight,
// converted to UTC).
type Evaluator struct {
	schema *table.DataTable
	today  *time.Time

	// CaseSensitive governs Contains/StartsWith/EndsWith. Per spec
	// §4.4 these are case-insensitive by default, so the zero value
	// (false) is the correct default; callers opt into case-sensitive
	// matching explicitly (a buffer's case_insensitive config option).
	CaseSensitive bool
}

func NewEvaluator(schema *table.DataTable) *Evaluator {
	return &Evaluator{schema: schema}
}

func (e *Evaluator) todayUTC() time.Time {
	if e.today == nil {
		now := time.Now()
		local := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		t := local.UTC()
		e.today = &t
	}
	return *e.today
}

// Matches reports whether row satisfies expr. ok is false (with err
// non-nil) when evaluation could not be completed for this row.
func (e *Evaluator) Matches(row table.Row, expr lang.Expr) (bool, error) {
	switch n := expr.(type) {
	case lang.OrExpr:
		l, err := e.Matches(row, n.Left)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return e.Matches(row, n.Right)

	case lang.AndExpr:
		l, err := e.Matches(row, n.Left)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return e.Matches(row, n.Right)

	case lang.NotExpr:
		inner, err := e.Matches(row, n.Inner)
		if err != nil {
			return false, err
		}
		return !inner, nil

	case lang.Comparison:
		return e.evalComparison(row, n)

	case lang.Between:
		return e.evalBetween(row, n)

	case lang.InList:
		return e.evalInList(row, n)

	case lang.IsNull:
		v, err := e.evalValue(row, n.Target)
		if err != nil {
			return false, err
		}
		isNull := v.IsNull()
		if n.Negate {
			return !isNull, nil
		}
		return isNull, nil
	}
	return false, fmt.Errorf("unsupported expression node %T", expr)
}

func (e *Evaluator) evalBetween(row table.Row, n lang.Between) (bool, error) {
	v, err := e.evalValue(row, n.Target)
	if err != nil {
		return false, err
	}
	lo, err := e.evalValue(row, n.Low)
	if err != nil {
		return false, err
	}
	hi, err := e.evalValue(row, n.Hi)
	if err != nil {
		return false, err
	}
	lv, rv := coerce(v, lo)
	_, hv := coerce(v, hi)
	in := value.Compare(lv, rv) >= 0 && value.Compare(lv, hv) <= 0
	if n.Negate {
		return !in, nil
	}
	return in, nil
}

func (e *Evaluator) evalInList(row table.Row, n lang.InList) (bool, error) {
	v, err := e.evalValue(row, n.Target)
	if err != nil {
		return false, err
	}
	found := false
	for _, item := range n.Items {
		iv, err := e.evalValue(row, item)
		if err != nil {
			return false, err
		}
		lv, rv := coerce(v, iv)
		if value.Compare(lv, rv) == 0 {
			found = true
			break
		}
	}
	if n.Negate {
		return !found, nil
	}
	return found, nil
}

func (e *Evaluator) evalComparison(row table.Row, n lang.Comparison) (bool, error) {
	l, err := e.evalValue(row, n.Left)
	if err != nil {
		return false, err
	}
	r, err := e.evalValue(row, n.Right)
	if err != nil {
		return false, err
	}

	if strings.EqualFold(n.Op, "like") {
		if !l.IsString() || !r.IsString() {
			return false, nil
		}
		return value.Like(l.String(), r.String()), nil
	}

	lv, rv := coerce(l, r)
	cmp := value.Compare(lv, rv)
	switch n.Op {
	case "=":
		return cmp == 0, nil
	case "<>", "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("unsupported operator %q", n.Op)
}

// coerce applies spec §4.4's bidirectional coercion rules: numeric vs
// numeric compares directly; string vs non-string widens the
// non-string side to its DisplayString; DateTime vs string attempts an
// ISO-8601 parse of the string side, falling back to string compare on
// both sides if that fails.
func coerce(a, b value.Value) (value.Value, value.Value) {
	if a.IsNull() || b.IsNull() {
		return a, b
	}
	if a.Kind == value.KindDateTime || b.Kind == value.KindDateTime {
		return coerceDateTime(a, b)
	}
	if a.IsNumeric() && b.IsNumeric() {
		return a, b
	}
	if a.IsString() && b.IsString() {
		return a, b
	}
	// One side is a string, the other is a non-string scalar: widen the
	// non-string side to its display form.
	if a.IsString() && !b.IsString() {
		return a, value.Str(b.DisplayString())
	}
	if b.IsString() && !a.IsString() {
		return value.Str(a.DisplayString()), b
	}
	return a, b
}

func coerceDateTime(a, b value.Value) (value.Value, value.Value) {
	if a.Kind == value.KindDateTime && b.Kind == value.KindDateTime {
		return a, b
	}
	if a.Kind == value.KindDateTime && b.IsString() {
		if t, ok := value.ParseDateTime(b.String()); ok {
			return a, value.DateTime(t)
		}
		return value.Str(a.DisplayString()), b
	}
	if b.Kind == value.KindDateTime && a.IsString() {
		if t, ok := value.ParseDateTime(a.String()); ok {
			return value.DateTime(t), b
		}
		return a, value.Str(b.DisplayString())
	}
	return a, b
}

func (e *Evaluator) evalValue(row table.Row, ve lang.ValueExpr) (value.Value, error) {
	switch n := ve.(type) {
	case lang.ColumnRef:
		idx, ok := e.schema.ColumnIndex(n.Name)
		if !ok {
			return value.Null, &EvalError{Reason: fmt.Sprintf("unknown column %q", n.Name)}
		}
		return row[idx], nil

	case lang.Literal:
		switch n.Kind {
		case lang.LitInt:
			return value.Int(n.IntVal), nil
		case lang.LitFloat:
			return value.Float(n.FloatVal), nil
		case lang.LitString:
			return value.Str(n.StrVal), nil
		case lang.LitBool:
			return value.Bool(n.BoolVal), nil
		case lang.LitNull:
			return value.Null, nil
		}
		return value.Null, fmt.Errorf("unsupported literal kind %v", n.Kind)

	case lang.DateCtor:
		return e.evalDateCtor(row, n)

	case lang.MethodCall:
		return e.evalMethodCall(row, n)
	}
	return value.Null, fmt.Errorf("unsupported value node %T", ve)
}

func (e *Evaluator) evalDateCtor(row table.Row, n lang.DateCtor) (value.Value, error) {
	if n.Today {
		return value.DateTime(e.todayUTC()), nil
	}
	if len(n.Args) != 3 && len(n.Args) != 6 {
		return value.Null, fmt.Errorf("DateTime() expects 3 or 6 arguments, got %d", len(n.Args))
	}
	ints := make([]int, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalValue(row, a)
		if err != nil {
			return value.Null, err
		}
		if v.Kind != value.KindInt {
			return value.Null, fmt.Errorf("DateTime() argument %d must be an integer", i)
		}
		ints[i] = int(v.I)
	}
	hour, minute, sec := 0, 0, 0
	if len(ints) == 6 {
		hour, minute, sec = ints[3], ints[4], ints[5]
	}
	t := time.Date(ints[0], time.Month(ints[1]), ints[2], hour, minute, sec, 0, time.UTC)
	return value.DateTime(t), nil
}

func (e *Evaluator) evalMethodCall(row table.Row, n lang.MethodCall) (value.Value, error) {
	target, err := e.evalValue(row, n.Target)
	if err != nil {
		return value.Null, err
	}
	if target.IsNull() {
		return value.Null, nil
	}

	// Method predicates operate on the coerced string form of the
	// target, per spec §4.4 rule 3 (e.g. a Float column's
	// Contains/IndexOf work against its display text, not just Str
	// columns).
	s := target.DisplayString()

	switch strings.ToLower(n.Method) {
	case "length":
		return value.Int(int64(value.Length(s))), nil

	case "tolower":
		return value.Str(strings.ToLower(s)), nil

	case "toupper":
		return value.Str(strings.ToUpper(s)), nil

	case "trim":
		return value.Str(strings.TrimSpace(s)), nil

	case "trimstart":
		return value.Str(strings.TrimLeft(s, " \t\n\r")), nil

	case "trimend":
		return value.Str(strings.TrimRight(s, " \t\n\r")), nil

	case "contains", "startswith", "endswith":
		arg, err := e.requireStringArg(row, n, 0)
		if err != nil {
			return value.Null, err
		}
		switch strings.ToLower(n.Method) {
		case "contains":
			return value.Bool(value.Contains(s, arg, e.CaseSensitive)), nil
		case "startswith":
			return value.Bool(value.StartsWith(s, arg, e.CaseSensitive)), nil
		default:
			return value.Bool(value.EndsWith(s, arg, e.CaseSensitive)), nil
		}

	case "indexof":
		arg, err := e.requireStringArg(row, n, 0)
		if err != nil {
			return value.Null, err
		}
		return value.Int(int64(value.IndexOf(s, arg))), nil
	}

	return value.Null, fmt.Errorf("unknown method %q", n.Method)
}

func (e *Evaluator) requireStringArg(row table.Row, n lang.MethodCall, idx int) (string, error) {
	if idx >= len(n.Args) {
		return "", fmt.Errorf("%s() requires an argument", n.Method)
	}
	v, err := e.evalValue(row, n.Args[idx])
	if err != nil {
		return "", err
	}
	if !v.IsString() {
		return "", fmt.Errorf("%s() argument must be a string", n.Method)
	}
	return v.String(), nil
}
