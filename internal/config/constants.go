package config

const (
	// Input Defaults
	DefaultInputFile     = "testcases.csv"
	DefaultDelimiter     = ","
	DefaultMaxFileSizeMB = 50

	// Rules Defaults
	DefaultStrictStepNumbering     = true
	DefaultMinExpectedResultLength = 4
	DefaultCoreMinAnchorMatches    = 2

	// Reporter Defaults
	DefaultReportFormat = "text"
	DefaultShowColumns  = true

	// Storage Defaults
	DefaultStorageCompressionCodec = "zstd"

	// Log Defaults
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// ConfigPathEnv overrides the config file lookup
	ConfigPathEnv = "TCSCANNER_CONFIG_PATH"

	maxConfigFileSize = 10 * 1024 * 1024
)

// Rule identifiers shared by the configuration and the rule registry
const (
	RuleRowStructure              = "row_structure"
	RuleEmptyRow                  = "empty_row"
	RuleRequiredField             = "required_field"
	RuleStepNumbering             = "step_numbering"
	RuleExpectedResultFormat      = "expected_result_format"
	RuleDataRequired              = "data_required"
	RuleGenericExpectedResult     = "generic_expected_result"
	RuleExpectedResultPunctuation = "expected_result_punctuation"
	RuleCoreSteps                 = "core_steps"
)

// Supported report formats
const (
	ReportFormatText = "text"
	ReportFormatJSON = "json"
)

// DefaultEnabledRules is the rule order used when none is configured
func DefaultEnabledRules() []string {
	return []string{RuleRowStructure, RuleEmptyRow, RuleRequiredField, RuleStepNumbering, RuleExpectedResultFormat}
}

// DefaultGenericPhrases are expected results too vague to verify anything
func DefaultGenericPhrases() []string {
	return []string{
		"ok", "okay", "works", "work", "done", "completed", "complete",
		"success", "successful", "pass", "passed", "correct", "correctly", "as expected",
	}
}
