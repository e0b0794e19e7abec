// Package value implements the tagged Value type shared by DataTable,
// DataView, and the query engine: nulls, booleans, numbers, strings
// (plain or interned), and UTC timestamps, with a single total order
// used everywhere sorting or comparison is needed.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind int

// Value variants, in the order used by Compare's cross-type ranking.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindInterned
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindInterned:
		return "InternedStr"
	case KindDateTime:
		return "DateTime"
	}
	return "Unknown"
}

// Value is a tagged union. Only the field matching Kind is meaningful.
// Str and Interned are never distinguished by any consumer outside this
// package's own String accessor.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	SP   *string // backing storage for KindInterned
	T    time.Time
}

// Null is the shared null value.
var Null = Value{Kind: KindNull}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Int constructs an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, I: i} }

// Float constructs a float value.
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }

// Str constructs a plain string value.
func Str(s string) Value { return Value{Kind: KindStr, S: s} }

// Interned constructs a string value backed by a shared pointer from an
// Interner. Callers must never branch on Kind == KindInterned; use
// IsString and String instead.
func Interned(sp *string) Value { return Value{Kind: KindInterned, SP: sp} }

// DateTime constructs a UTC timestamp value.
func DateTime(t time.Time) Value { return Value{Kind: KindDateTime, T: t.UTC()} }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsString reports whether v is Str or Interned; callers should use
// this instead of comparing Kind directly so the two string variants
// stay interchangeable.
func (v Value) IsString() bool { return v.Kind == KindStr || v.Kind == KindInterned }

// IsNumeric reports whether v is Int or Float.
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// String returns the underlying UTF-8 bytes of a Str or Interned value.
// Calling it on any other Kind panics; callers must check IsString first.
func (v Value) String() string {
	switch v.Kind {
	case KindStr:
		return v.S
	case KindInterned:
		if v.SP == nil {
			return ""
		}
		return *v.SP
	default:
		panic(fmt.Sprintf("value: String called on non-string Kind %s", v.Kind))
	}
}

// Float64 returns the numeric value as a float64. Panics unless IsNumeric.
func (v Value) Float64() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.I)
	case KindFloat:
		return v.F
	default:
		panic(fmt.Sprintf("value: Float64 called on non-numeric Kind %s", v.Kind))
	}
}

// DisplayString renders v the way the renderer and the string-coercion
// comparison rules (spec §4.4 rule 3) expect: integers with no decimal
// point, floats using the shortest round-tripping decimal, datetimes as
// ISO-8601, booleans as "true"/"false", null as "".
func (v Value) DisplayString() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F, 'f', -1, 64)
	case KindStr, KindInterned:
		return v.String()
	case KindDateTime:
		return v.T.Format(time.RFC3339)
	}
	return ""
}

// kindRank assigns the cross-type ranking of spec §3.1:
// Null < Bool < {Int/Float} < {Str/Interned} < DateTime.
func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindStr, KindInterned:
		return 3
	case KindDateTime:
		return 4
	}
	return 5
}

// Compare implements the total cross-type order of spec §3.1: it is the
// single source of truth used by sorting and ORDER BY. NaN floats
// compare Equal to any other float rather than panicking or producing
// an inconsistent order.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.Kind), kindRank(b.Kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 0: // both Null
		return 0
	case 1: // both Bool
		if a.B == b.B {
			return 0
		}
		if !a.B {
			return -1
		}
		return 1
	case 2: // numeric, possibly mixed Int/Float
		return compareFloat(a.Float64(), b.Float64())
	case 3: // Str/Interned, interchangeable
		return strings.Compare(a.String(), b.String())
	case 4: // DateTime
		switch {
		case a.T.Before(b.T):
			return -1
		case a.T.After(b.T):
			return 1
		default:
			return 0
		}
	}
	return 0
}

func compareFloat(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b are equal under Compare.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// Less reports whether a sorts before b under Compare.
func Less(a, b Value) bool { return Compare(a, b) < 0 }
