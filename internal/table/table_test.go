package table

import (
	"strings"
	"testing"

	"github.com/halprin/qtab/internal/value"
)

func TestSanitizeTableName(t *testing.T) {
	cases := map[string]string{
		"trades.csv":  "trades_csv",
		"2025data":    "_2025data",
		"my-table":    "my_table",
		"clean_name1": "clean_name1",
	}
	for in, want := range cases {
		if got := SanitizeTableName(in); got != want {
			t.Errorf("SanitizeTableName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadCSVTypeInferenceAndNulls(t *testing.T) {
	csvData := "id,price,name,flag\n1,10.5,Alice,true\n2,,Bob,false\n3,15.75,,true\n"
	tbl, err := LoadCSV(strings.NewReader(csvData), "t", DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", tbl.RowCount())
	}
	priceIdx, ok := tbl.ColumnIndex("price")
	if !ok {
		t.Fatalf("price column missing")
	}
	if tbl.Columns[priceIdx].DeclaredType != value.ColFloat {
		t.Fatalf("price DeclaredType = %v, want Float", tbl.Columns[priceIdx].DeclaredType)
	}
	if !tbl.Rows[1][priceIdx].IsNull() {
		t.Fatalf("empty price cell must parse to Null")
	}
	nameIdx, _ := tbl.ColumnIndex("NAME") // case-insensitive lookup
	if tbl.Rows[0][nameIdx].DisplayString() != "Alice" {
		t.Fatalf("name[0] = %q, want Alice", tbl.Rows[0][nameIdx].DisplayString())
	}
}

func TestLoadJSONColumnOrderAndInvalidRecord(t *testing.T) {
	data := `[{"a":1,"b":"x"},{"b":"y","c":true}]`
	tbl, err := LoadJSON(strings.NewReader(data), "t", DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	wantOrder := []string{"a", "b", "c"}
	for i, name := range wantOrder {
		if tbl.Columns[i].Name != name {
			t.Fatalf("column %d = %q, want %q", i, tbl.Columns[i].Name, name)
		}
	}
	if !tbl.Rows[1][0].IsNull() {
		t.Fatalf("missing key 'a' in second record must be Null")
	}

	_, err = LoadJSON(strings.NewReader(`[{"a":1}, "not-an-object"]`), "t", DefaultLoadOptions())
	if err == nil {
		t.Fatalf("expected InvalidRecordError for non-object element")
	}
	if _, ok := err.(*InvalidRecordError); !ok {
		t.Fatalf("expected *InvalidRecordError, got %T", err)
	}
}

func TestLoadJSONArraysAndObjectsStringify(t *testing.T) {
	data := `[{"tags":["a","b"]}]`
	tbl, err := LoadJSON(strings.NewReader(data), "t", DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	v := tbl.Rows[0][0]
	if !v.IsString() {
		t.Fatalf("array cell must become a string value, got kind %v", v.Kind)
	}
	if v.String() != `["a","b"]` {
		t.Fatalf("array cell = %q, want JSON string repr", v.String())
	}
}

func TestComputeStats(t *testing.T) {
	csvData := "x\n1\n1\n2\n\"\"\n"
	tbl, err := LoadCSV(strings.NewReader(csvData), "t", DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	col := tbl.Columns[0]
	if col.NullCount != 1 {
		t.Fatalf("NullCount = %d, want 1", col.NullCount)
	}
	if col.UniqueCount == nil || *col.UniqueCount != 2 {
		t.Fatalf("UniqueCount = %v, want 2", col.UniqueCount)
	}
}
