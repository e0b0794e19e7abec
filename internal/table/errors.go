package table

import "fmt"

// InvalidRecordError is returned when a JSON array element is not an
// object, per spec §4.2 ("mixed records fail with InvalidRecord(index)").
type InvalidRecordError struct {
	Index int
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record at index %d: expected a JSON object", e.Index)
}

// ColumnNotFoundError reports a column name that the table does not have.
type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %s", e.Name)
}
