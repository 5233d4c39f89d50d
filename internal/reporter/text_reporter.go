package reporter

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/rs/zerolog"
)

//go:embed templates/report.txt.tmpl
var defaultTemplate embed.FS

// textPageData feeds the text template
type textPageData struct {
	Source      string
	ShowColumns bool
	Columns     []string
	RowsScanned int
	Status      models.ScanStatus
	Errors      int
	Warnings    int
	Breakdown   []RuleBreakdown
	RuleWidth   int
	Findings    []models.Finding
}

// TextReporter renders a human-readable report
type TextReporter struct {
	showColumns bool
	template    *template.Template
	logger      zerolog.Logger
}

// NewTextReporter parses the embedded template
func NewTextReporter(cfg config.ReporterConfig, logger zerolog.Logger) (*TextReporter, error) {
	tmpl, err := template.New(DefaultReportTemplateName).
		Funcs(templateFunctions()).
		ParseFS(defaultTemplate, "templates/"+DefaultReportTemplateName)
	if err != nil {
		return nil, common.WrapError(err, "failed to parse report template")
	}

	return &TextReporter{
		showColumns: cfg.ShowColumns,
		template:    tmpl,
		logger:      logger.With().Str("module", "TextReporter").Logger(),
	}, nil
}

// Render writes the report to w
func (r *TextReporter) Render(w io.Writer, report *models.Report, source string) error {
	findings := report.Findings()
	breakdown := Breakdown(findings)

	width := 0
	for _, b := range breakdown {
		if len(b.RuleID) > width {
			width = len(b.RuleID)
		}
	}

	data := textPageData{
		Source:      source,
		ShowColumns: r.showColumns,
		Columns:     report.Columns(),
		RowsScanned: report.RowsScanned(),
		Status:      report.Status(),
		Errors:      report.Count(models.SeverityError),
		Warnings:    report.Count(models.SeverityWarning),
		Breakdown:   breakdown,
		RuleWidth:   width,
		Findings:    findings,
	}

	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return common.WrapError(err, "failed to execute report template")
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// FindingLine formats one finding as
// "row <index> (line <n>) <SEVERITY> <rule_id>[ field]: <message>"
func FindingLine(f models.Finding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "row %d (line %d) %s %s", f.RowIndex, f.Line, f.Severity, f.RuleID)
	if f.FieldName != "" {
		sb.WriteString(" ")
		sb.WriteString(f.FieldName)
	}
	sb.WriteString(": ")
	sb.WriteString(f.Message)
	return sb.String()
}

func templateFunctions() template.FuncMap {
	return template.FuncMap{
		"join":        strings.Join,
		"findingLine": FindingLine,
	}
}
