package models

// ScanStatus is the overall verdict of a scan
type ScanStatus string

const (
	ScanStatusPass             ScanStatus = "PASS"
	ScanStatusPassWithWarnings ScanStatus = "PASS_WITH_WARNINGS"
	ScanStatusFail             ScanStatus = "FAIL"
)

// Report is the read-only result of one scan
type Report struct {
	findings     []Finding
	counts       map[Severity]int
	rowsScanned  int
	columns      []string
	warningsFail bool
}

// Findings returns a copy of the findings in discovery order
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Count returns the number of findings with severity sev
func (r *Report) Count(sev Severity) int {
	return r.counts[sev]
}

// Total returns the number of findings
func (r *Report) Total() int {
	return len(r.findings)
}

// IsClean is true when no ERROR finding exists, and also no WARNING
// when the report was built with warnings failing the scan.
func (r *Report) IsClean() bool {
	if r.counts[SeverityError] > 0 {
		return false
	}
	if r.warningsFail && r.counts[SeverityWarning] > 0 {
		return false
	}
	return true
}

// Status summarizes the report as PASS, PASS_WITH_WARNINGS or FAIL
func (r *Report) Status() ScanStatus {
	switch {
	case !r.IsClean():
		return ScanStatusFail
	case r.counts[SeverityWarning] > 0:
		return ScanStatusPassWithWarnings
	default:
		return ScanStatusPass
	}
}

// RowsScanned returns the number of records the scan visited
func (r *Report) RowsScanned() int {
	return r.rowsScanned
}

// Columns returns the header columns of the scanned table
func (r *Report) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// ReportBuilder accumulates findings during a scan
type ReportBuilder struct {
	findings        []Finding
	rowsScanned     int
	columns         []string
	warningsFail    bool
	promoteWarnings bool
}

// NewReportBuilder creates an empty builder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// WithColumns sets the header columns of the scanned table
func (b *ReportBuilder) WithColumns(columns []string) *ReportBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// WithWarningsFail makes WARNING findings fail the scan
func (b *ReportBuilder) WithWarningsFail(v bool) *ReportBuilder {
	b.warningsFail = v
	return b
}

// WithPromoteWarnings reports every WARNING as ERROR
func (b *ReportBuilder) WithPromoteWarnings(v bool) *ReportBuilder {
	b.promoteWarnings = v
	return b
}

// AddRow counts one visited record
func (b *ReportBuilder) AddRow() *ReportBuilder {
	b.rowsScanned++
	return b
}

// Append adds findings in the given order
func (b *ReportBuilder) Append(findings ...Finding) *ReportBuilder {
	b.findings = append(b.findings, findings...)
	return b
}

// Build returns the immutable report
func (b *ReportBuilder) Build() *Report {
	findings := make([]Finding, len(b.findings))
	counts := make(map[Severity]int, 2)
	for i, f := range b.findings {
		if b.promoteWarnings && f.Severity == SeverityWarning {
			f.Severity = SeverityError
		}
		findings[i] = f
		counts[f.Severity]++
	}

	return &Report{
		findings:     findings,
		counts:       counts,
		rowsScanned:  b.rowsScanned,
		columns:      append([]string(nil), b.columns...),
		warningsFail: b.warningsFail,
	}
}
