package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/halprin/qtab/internal/value"
)

// LoadOptions parametrizes the loaders, mirroring the config knobs of
// SPEC_FULL.md §6.1.
type LoadOptions struct {
	SampleSize    int      // rows sampled for type inference; default 100
	NullTokens    []string // extra strings (beyond "" / JSON null) treated as null
	Intern        bool     // apply string interning to low-cardinality columns
	InternThresh  float64  // unique/sample ratio below which a column is interned; default 0.5
}

// DefaultLoadOptions returns the spec's documented defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SampleSize: 100, Intern: true, InternThresh: 0.5}
}

func (o LoadOptions) sampleSize() int {
	if o.SampleSize <= 0 {
		return 100
	}
	return o.SampleSize
}

func (o LoadOptions) isNullToken(s string) bool {
	if s == "" {
		return true
	}
	for _, t := range o.NullTokens {
		if s == t {
			return true
		}
	}
	return false
}

// Load dispatches on file extension (.csv or .json) and derives the
// table name from the sanitized base filename, per spec §4.2.
func Load(path string, opts LoadOptions) (*DataTable, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-supplied by design; this is a local file browser
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := SanitizeTableName(base)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f, name, opts)
	case ".json":
		return LoadJSON(f, name, opts)
	default:
		return nil, fmt.Errorf("loading %s: unsupported extension %q", path, filepath.Ext(path))
	}
}

// LoadCSV implements the CSV half of spec §4.2's three-step pipeline:
// collect raw string values, infer column types from a prefix sample,
// then materialize rows by parsing each cell against the inferred
// type.
func LoadCSV(r io.Reader, tableName string, opts LoadOptions) (*DataTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return New(tableName, nil), nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var raw [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(raw)+1, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
			if opts.isNullToken(rec[i]) {
				rec[i] = ""
			}
		}
		raw = append(raw, rec)
	}

	return materialize(tableName, header, raw, opts)
}

func materialize(tableName string, header []string, raw [][]string, opts LoadOptions) (*DataTable, error) {
	nCols := len(header)
	cols := make([]Column, nCols)
	for i, h := range header {
		cols[i] = Column{Name: h, DeclaredType: value.ColNull}
	}

	// Step 2: infer types from a prefix sample of non-null cells.
	sample := opts.sampleSize()
	for ci := range cols {
		seen := 0
		for _, rec := range raw {
			if seen >= sample {
				break
			}
			if ci >= len(rec) {
				continue
			}
			cell := rec[ci]
			if cell == "" {
				continue
			}
			cols[ci].DeclaredType = value.WidenType(cols[ci].DeclaredType, value.InferType(cell))
			seen++
		}
	}

	t := New(tableName, cols)

	// String interning: decide per column from the inference sample.
	interners := make([]*value.Interner, nCols)
	if opts.Intern {
		thresh := opts.InternThresh
		if thresh <= 0 {
			thresh = 0.5
		}
		for ci := range cols {
			if cols[ci].DeclaredType != value.ColStr {
				continue
			}
			seenVals := make(map[string]struct{})
			total := 0
			for _, rec := range raw {
				if total >= sample {
					break
				}
				if ci >= len(rec) || rec[ci] == "" {
					continue
				}
				seenVals[rec[ci]] = struct{}{}
				total++
			}
			if total > 0 && float64(len(seenVals))/float64(total) < thresh {
				interners[ci] = value.NewInterner()
			}
		}
	}

	// Step 3: materialize rows.
	for _, rec := range raw {
		row := make(Row, nCols)
		for ci := range cols {
			var cell string
			if ci < len(rec) {
				cell = rec[ci]
			}
			v := value.ParseStringAs(cell, cols[ci].DeclaredType)
			if in := interners[ci]; in != nil && v.Kind == value.KindStr {
				v = in.Intern(v.S)
			}
			if !v.IsNull() {
				cols[ci].DeclaredType = value.WidenType(cols[ci].DeclaredType, value.KindToColumnType(v.Kind))
			}
			row[ci] = v
		}
		t.AppendRow(row)
	}
	t.Columns = cols
	t.rebuildIndex()
	t.ComputeStats()
	return t, nil
}
