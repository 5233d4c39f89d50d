package config

// ReporterConfig defines how the report is rendered
type ReporterConfig struct {
	Format      string `json:"format,omitempty" yaml:"format,omitempty" validate:"reportformat"`
	OutputFile  string `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	ShowColumns bool   `json:"show_columns" yaml:"show_columns"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format:      DefaultReportFormat,
		OutputFile:  "",
		ShowColumns: DefaultShowColumns,
	}
}
