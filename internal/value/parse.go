package value

import (
	"strconv"
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses an ISO-8601 timestamp or a bare date (interpreted
// as midnight UTC), per spec §4.4 rule 4. ok is false if s matches none
// of the accepted layouts.
func ParseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// ParseStringAs parses s as the given declared column type, per spec
// §4.1: failure returns Str(s) rather than Null, except that an empty
// string always becomes Null regardless of ty. ColMixed (and ColNull,
// which means "no sample was available yet") fall back to per-cell type
// inference since no single type can be assumed.
func ParseStringAs(s string, ty ColumnType) Value {
	if s == "" {
		return Null
	}

	switch ty {
	case ColBool:
		if b, ok := parseBool(s); ok {
			return Bool(b)
		}
		return Str(s)
	case ColInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return Int(i)
		}
		return Str(s)
	case ColFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Float(f)
		}
		return Str(s)
	case ColDateTime:
		if t, ok := ParseDateTime(s); ok {
			return DateTime(t)
		}
		return Str(s)
	case ColStr:
		return Str(s)
	default: // ColMixed, ColNull
		return inferCell(s)
	}
}

// inferCell guesses the narrowest type a single non-empty cell fits,
// trying Bool, Int, Float, DateTime in turn before falling back to Str.
func inferCell(s string) Value {
	if b, ok := parseBool(s); ok {
		return Bool(b)
	}
	if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Float(f)
	}
	if t, ok := ParseDateTime(s); ok {
		return DateTime(t)
	}
	return Str(s)
}

// InferType returns the ColumnType a single non-empty cell's text
// content would produce; used by the loader's type-inference pass. An
// empty cell carries no type information and yields ColNull.
func InferType(s string) ColumnType {
	if s == "" {
		return ColNull
	}
	return KindToColumnType(inferCell(s).Kind)
}

// WidenType combines a column's running declared type with a newly
// observed cell type, per spec §3.2: disagreement collapses to Mixed,
// and Null observations never narrow an already-established type.
func WidenType(current, observed ColumnType) ColumnType {
	if observed == ColNull {
		return current
	}
	if current == ColNull {
		return observed
	}
	if current == observed {
		return current
	}
	return ColMixed
}
