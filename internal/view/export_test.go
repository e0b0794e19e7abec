package view

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestExportCSV(t *testing.T) {
	v := New(peopleTable())

	var buf bytes.Buffer
	if err := v.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	want := "id,name,score\n1,ada,9.5\n2,grace,\n3,alan,7.25\n"
	if got := buf.String(); got != want {
		t.Fatalf("ExportCSV output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestExportJSON(t *testing.T) {
	v := New(peopleTable())

	var buf bytes.Buffer
	if err := v.ExportJSON(&buf); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("ExportJSON produced invalid JSON: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0]["id"] != "1" || records[0]["name"] != "ada" || records[0]["score"] != "9.5" {
		t.Fatalf("record 0 mismatch: %+v", records[0])
	}
	if records[1]["score"] != nil {
		t.Fatalf("record 1 score should be JSON null, got %+v", records[1]["score"])
	}
	if records[2]["name"] != "alan" || records[2]["score"] != "7.25" {
		t.Fatalf("record 2 mismatch: %+v", records[2])
	}
}
