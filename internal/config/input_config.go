package config

import (
	"unicode/utf8"

	"github.com/aleister1102/tcscanner/internal/models"
)

// ColumnMapping maps logical column names to header names in the input file
type ColumnMapping struct {
	TestID         string `json:"test_id,omitempty" yaml:"test_id,omitempty" validate:"column"`
	StepNumber     string `json:"step_number,omitempty" yaml:"step_number,omitempty" validate:"column"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty" validate:"column"`
	ExpectedResult string `json:"expected_result,omitempty" yaml:"expected_result,omitempty" validate:"column"`
	Data           string `json:"data,omitempty" yaml:"data,omitempty" validate:"column"`
}

// NewDefaultColumnMapping maps every logical column to a header of the same name
func NewDefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		TestID:         models.FieldTestID,
		StepNumber:     models.FieldStepNumber,
		Description:    models.FieldDescription,
		ExpectedResult: models.FieldExpectedResult,
		Data:           models.FieldData,
	}
}

// HeaderFor returns the header name mapped to a logical column.
// Names that are not logical columns map to themselves.
func (m ColumnMapping) HeaderFor(logical string) string {
	var header string
	switch logical {
	case models.FieldTestID:
		header = m.TestID
	case models.FieldStepNumber:
		header = m.StepNumber
	case models.FieldDescription:
		header = m.Description
	case models.FieldExpectedResult:
		header = m.ExpectedResult
	case models.FieldData:
		header = m.Data
	default:
		return logical
	}
	if header == "" {
		return logical
	}
	return header
}

// ByHeader returns header name -> logical name for every logical column
func (m ColumnMapping) ByHeader() map[string]string {
	out := make(map[string]string, 5)
	for _, logical := range models.LogicalFields() {
		out[m.HeaderFor(logical)] = logical
	}
	return out
}

// InputConfig defines where and how the test-case table is read
type InputConfig struct {
	InputFile     string        `json:"input_file,omitempty" yaml:"input_file,omitempty"`
	Delimiter     string        `json:"delimiter,omitempty" yaml:"delimiter,omitempty" validate:"delimiter"`
	MaxFileSizeMB int           `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"min=1"`
	Columns       ColumnMapping `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// NewDefaultInputConfig creates default input configuration
func NewDefaultInputConfig() InputConfig {
	return InputConfig{
		InputFile:     DefaultInputFile,
		Delimiter:     DefaultDelimiter,
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		Columns:       NewDefaultColumnMapping(),
	}
}

// DelimiterRune returns the configured delimiter, or ',' when unset or invalid
func (c InputConfig) DelimiterRune() rune {
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size == 0 || r == utf8.RuneError || size != len(c.Delimiter) {
		return ','
	}
	return r
}

// MaxFileSizeBytes returns the input size limit in bytes
func (c InputConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
