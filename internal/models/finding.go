package models

// Severity of a finding
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Severities lists severities from most to least severe
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning}
}

// Finding is one validation issue tied to a row and the rule that raised it
type Finding struct {
	RowIndex  int      `json:"row_index"`
	Line      int      `json:"line"`
	RuleID    string   `json:"rule_id"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	FieldName string   `json:"field_name,omitempty"`
}

// NewFinding creates a finding positioned at rec
func NewFinding(rec Record, ruleID string, severity Severity, message, fieldName string) Finding {
	return Finding{
		RowIndex:  rec.Index,
		Line:      rec.Line,
		RuleID:    ruleID,
		Severity:  severity,
		Message:   message,
		FieldName: fieldName,
	}
}

// ParquetFinding is the row layout of the findings export
type ParquetFinding struct {
	SourceFile string `parquet:"source_file"`
	RowIndex   int32  `parquet:"row_index"`
	Line       int32  `parquet:"line"`
	RuleID     string `parquet:"rule_id"`
	Severity   string `parquet:"severity"`
	Message    string `parquet:"message"`
	FieldName  string `parquet:"field_name,optional"`
	ScannedAt  int64  `parquet:"scanned_at_ms"`
}
