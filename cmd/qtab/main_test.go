package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunQuery(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "people.csv")
	csvBody := "id,name,score\n1,ada,9.5\n2,grace,\n3,alan,7.25\n"
	if err := os.WriteFile(csvPath, []byte(csvBody), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	runErr := runQuery(nil, []string{csvPath, "select * from people order by id"})

	_ = w.Close()
	os.Stdout = stdout
	out, _ := io.ReadAll(r)

	if runErr != nil {
		t.Fatalf("runQuery: %v", runErr)
	}

	got := string(out)
	if !strings.Contains(got, "id") || !strings.Contains(got, "name") || !strings.Contains(got, "score") {
		t.Fatalf("runQuery output missing expected headers: %q", got)
	}
	if !strings.Contains(got, "ada") || !strings.Contains(got, "grace") || !strings.Contains(got, "alan") {
		t.Fatalf("runQuery output missing expected rows: %q", got)
	}
}

func TestRunQuery_LoadError(t *testing.T) {
	err := runQuery(nil, []string{filepath.Join(t.TempDir(), "missing.csv"), "select * from missing"})
	if err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}
