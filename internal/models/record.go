package models

import (
	"errors"
	"fmt"
	"strings"
)

// Logical column names understood by the built-in rules
const (
	FieldTestID         = "test_id"
	FieldStepNumber     = "step_number"
	FieldDescription    = "description"
	FieldExpectedResult = "expected_result"
	FieldData           = "data"
)

// LogicalFields lists the logical columns in their canonical order
func LogicalFields() []string {
	return []string{FieldTestID, FieldStepNumber, FieldDescription, FieldExpectedResult, FieldData}
}

// ErrMissingField is returned by Record.Require when a key is absent from the row
var ErrMissingField = errors.New("field missing from row")

// Record is one data row of the input table.
// Index is the 1-based data-row position with the header excluded.
// Line is the physical line where the row starts in the file.
type Record struct {
	Index  int
	Line   int
	Width  int
	Fields map[string]string
}

// NewRecord builds a record owning a private copy of fields
func NewRecord(index, line, width int, fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{
		Index:  index,
		Line:   line,
		Width:  width,
		Fields: copied,
	}
}

// Value returns the raw cell value for col and whether the key exists
func (r Record) Value(col string) (string, bool) {
	v, ok := r.Fields[col]
	return v, ok
}

// Require returns the raw value for col, or an error wrapping ErrMissingField
// when the row has no such key at all.
func (r Record) Require(col string) (string, error) {
	v, ok := r.Fields[col]
	if !ok {
		return "", fmt.Errorf("%w: %q (row %d)", ErrMissingField, col, r.Index)
	}
	return v, nil
}

// IsBlank reports whether every field is empty. A nil isEmpty treats
// blank and whitespace-only values as empty.
func (r Record) IsBlank(isEmpty func(string) bool) bool {
	if isEmpty == nil {
		isEmpty = func(v string) bool { return strings.TrimSpace(v) == "" }
	}
	for _, v := range r.Fields {
		if !isEmpty(v) {
			return false
		}
	}
	return true
}
