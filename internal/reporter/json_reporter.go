package reporter

import (
	"encoding/json"
	"io"

	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/rs/zerolog"
)

// JSONReport is the machine-readable report document
type JSONReport struct {
	File        string                  `json:"file"`
	Columns     []string                `json:"columns"`
	RowsScanned int                     `json:"rows_scanned"`
	Status      models.ScanStatus       `json:"status"`
	Clean       bool                    `json:"clean"`
	Counts      map[models.Severity]int `json:"counts"`
	Findings    []models.Finding        `json:"findings"`
}

// JSONReporter renders the report as one indented JSON document
type JSONReporter struct {
	logger zerolog.Logger
}

// NewJSONReporter creates a JSON reporter
func NewJSONReporter(logger zerolog.Logger) *JSONReporter {
	return &JSONReporter{logger: logger.With().Str("module", "JSONReporter").Logger()}
}

// Render writes the report to w
func (r *JSONReporter) Render(w io.Writer, report *models.Report, source string) error {
	doc := NewJSONReport(report, source)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// NewJSONReport converts a report to its JSON document
func NewJSONReport(report *models.Report, source string) JSONReport {
	counts := make(map[models.Severity]int, 2)
	for _, sev := range models.Severities() {
		counts[sev] = report.Count(sev)
	}

	findings := report.Findings()
	if findings == nil {
		findings = []models.Finding{}
	}
	columns := report.Columns()
	if columns == nil {
		columns = []string{}
	}

	return JSONReport{
		File:        source,
		Columns:     columns,
		RowsScanned: report.RowsScanned(),
		Status:      report.Status(),
		Clean:       report.IsClean(),
		Counts:      counts,
		Findings:    findings,
	}
}
