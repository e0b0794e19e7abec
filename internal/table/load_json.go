package table

import (
	"encoding/json"
	"fmt"
	"io"
)

// LoadJSON implements the JSON half of spec §4.2: the top-level value
// must be an array of objects. Column order follows the insertion
// order of the first object's keys; later objects contribute missing
// keys as additional columns, appended in first-seen order. Every
// scalar is stringified and run through the same inference/parse
// pipeline CSV uses, so a JSON number column still ends up Int/Float
// and a JSON string column that looks like a date still infers
// DateTime — spec §4.2 describes CSV and JSON as sharing one pipeline.
func LoadJSON(r io.Reader, tableName string, opts LoadOptions) (*DataTable, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return New(tableName, nil), nil
		}
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("reading JSON: top-level value must be an array")
	}

	var colOrder []string
	colSeen := make(map[string]bool)
	var records []map[string]string

	idx := 0
	for dec.More() {
		rec, keys, err := decodeObjectRecord(dec)
		if err != nil {
			return nil, &InvalidRecordError{Index: idx}
		}
		for _, k := range keys {
			if !colSeen[k] {
				colSeen[k] = true
				colOrder = append(colOrder, k)
			}
		}
		records = append(records, rec)
		idx++
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	raw := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(colOrder))
		for ci, k := range colOrder {
			if v := rec[k]; !opts.isNullToken(v) {
				row[ci] = v
			}
		}
		raw[i] = row
	}

	return materialize(tableName, colOrder, raw, opts)
}

func decodeObjectRecord(dec *json.Decoder) (map[string]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object")
	}

	rec := make(map[string]string)
	var keys []string // in document order
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key")
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = jsonScalarToString(raw)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, nil, err
	}
	return rec, keys, nil
}

func jsonScalarToString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Number:
		return v.String()
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
