// Package table implements the immutable, append-only columnar
// DataTable loaded from CSV or JSON, per spec §3.2/§3.3/§4.2.
package table

import "github.com/halprin/qtab/internal/value"

// Column describes one column of a DataTable: its name, inferred
// scalar type, and null/uniqueness bookkeeping populated after load.
type Column struct {
	Name         string
	DeclaredType value.ColumnType
	Nullable     bool
	NullCount    int
	UniqueCount  *int // nil until computed
}
