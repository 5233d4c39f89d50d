package reporter

const (
	// DefaultReportTemplateName is the embedded text report template
	DefaultReportTemplateName = "report.txt.tmpl"

	// FilePermissions is the mode of report files
	FilePermissions = 0644
)
