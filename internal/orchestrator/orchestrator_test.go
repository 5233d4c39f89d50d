package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/datastore"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/aleister1102/tcscanner/internal/reporter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanCSV = "test_id,step_number,description,expected_result\n" +
	"TC1,1,Open app,App opens.\n" +
	"TC1,2,Open menu,Menu is shown.\n"

const gapCSV = "test_id,step_number,description,expected_result\n" +
	"TC1,1,Open app,App opens.\n" +
	"TC1,3,Open menu,Menu is shown.\n"

// isolate runs the test in an empty directory with no config file in reach
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(config.ConfigPathEnv, "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(overrides Overrides) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(overrides, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExitCodes(t *testing.T) {
	pattern := "([unclosed"

	tests := []struct {
		name      string
		csv       string
		overrides Overrides
		wantCode  int
		wantErr   string
	}{
		{name: "clean table", csv: cleanCSV, wantCode: ExitClean},
		{name: "trailing whitespace line", csv: cleanCSV + "   \n", wantCode: ExitClean},
		{name: "step gap is an error", csv: gapCSV, wantCode: ExitFindings},
		{name: "lenient steps give a clean warning", csv: gapCSV, overrides: Overrides{StrictSteps: "false"}, wantCode: ExitClean},
		{name: "warnings fail", csv: gapCSV, overrides: Overrides{StrictSteps: "false", WarningsFail: true}, wantCode: ExitFindings},
		{name: "final check promotes warnings", csv: gapCSV, overrides: Overrides{StrictSteps: "false", FinalCheck: true}, wantCode: ExitFindings},
		{name: "unknown rule id", csv: cleanCSV, overrides: Overrides{Rules: "row_structure,nope"}, wantCode: ExitConfiguration, wantErr: "nope"},
		{name: "bad pattern", csv: cleanCSV, overrides: Overrides{Pattern: &pattern}, wantCode: ExitConfiguration},
		{name: "bad strict steps value", csv: cleanCSV, overrides: Overrides{StrictSteps: "maybe"}, wantCode: ExitConfiguration, wantErr: "maybe"},
		{name: "bad format", csv: cleanCSV, overrides: Overrides{Format: "xml"}, wantCode: ExitConfiguration},
		{name: "missing config file", csv: cleanCSV, overrides: Overrides{ConfigFile: "absent.yaml"}, wantCode: ExitConfiguration, wantErr: "does not exist"},
		{name: "missing input file", overrides: Overrides{InputFile: "absent.csv"}, wantCode: ExitInput, wantErr: "cannot open input file"},
		{
			name:     "header lacks a required column",
			csv:      "test_id,step_number,description\nTC1,1,Open app\n",
			wantCode: ExitInput,
			wantErr:  "header is missing required columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.csv != "" {
				writeFile(t, dir, config.DefaultInputFile, tt.csv)
			}

			code, _, stderr := run(tt.overrides)
			assert.Equal(t, tt.wantCode, code, stderr)
			if tt.wantErr != "" {
				assert.Contains(t, stderr, tt.wantErr)
			}
		})
	}
}

func TestRun_TextReportOnStdout(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "cases.csv", gapCSV)

	code, stdout, _ := run(Overrides{InputFile: input})
	assert.Equal(t, ExitFindings, code)
	assert.Contains(t, stdout, "Test case scan: "+input)
	assert.Contains(t, stdout, "Status: FAIL")
	assert.Contains(t, stdout, "row 2 (line 3) ERROR step_numbering step_number: expected step 2, got 3")
}

func TestRun_JSONReportToFile(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "cases.csv", gapCSV)
	outFile := filepath.Join(dir, "out", "report.json")

	code, stdout, _ := run(Overrides{InputFile: input, Format: "JSON", OutputFile: outFile})
	assert.Equal(t, ExitFindings, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var doc reporter.JSONReport
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 2, doc.RowsScanned)
	assert.False(t, doc.Clean)
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, "step_numbering", doc.Findings[0].RuleID)
}

func TestRun_OutputFailure(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.DefaultInputFile, cleanCSV)
	blocker := writeFile(t, dir, "blocker", "")

	code, _, stderr := run(Overrides{OutputFile: filepath.Join(blocker, "report.txt")})
	assert.Equal(t, ExitOutput, code, stderr)
}

func TestRun_ConfigFileAndOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "suite.csv", "ID,Step,Action,Expected\nTC1,1,Open app,App opens\n")
	writeFile(t, dir, "config.yaml", `
input_config:
  input_file: suite.csv
  columns:
    test_id: ID
    step_number: Step
    description: Action
    expected_result: Expected
rules_config:
  expected_result_pattern: '\.$'
reporter_config:
  format: json
`)

	code, stdout, stderr := run(Overrides{})
	require.Equal(t, ExitClean, code, stderr)

	var doc reporter.JSONReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, []string{"ID", "Step", "Action", "Expected"}, doc.Columns)
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, models.SeverityWarning, doc.Findings[0].Severity)

	code, _, _ = run(Overrides{WarningsFail: true})
	assert.Equal(t, ExitFindings, code)
}

func TestRun_UnknownConfigKey(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.DefaultInputFile, cleanCSV)
	writeFile(t, dir, "config.yaml", "rules_config:\n  enabled_rulez: [empty_row]\n")

	code, _, stderr := run(Overrides{})
	assert.Equal(t, ExitConfiguration, code)
	assert.Contains(t, stderr, "enabled_rulez")
}

func TestRun_UnwritableLogFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.DefaultInputFile, cleanCSV)
	writeFile(t, dir, "blocker", "")
	writeFile(t, dir, "config.yaml", "log_config:\n  log_file: blocker/logs/tcscanner.log\n")

	code, _, stderr := run(Overrides{})
	assert.Equal(t, ExitConfiguration, code, stderr)
	assert.Contains(t, stderr, "log_config")
}

func TestExecuteScan_ParquetExport(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "cases.csv", gapCSV+"TC2,,Login,\n")
	parquetFile := filepath.Join(dir, "findings", "scan.parquet")

	cfg := config.NewDefaultGlobalConfig()
	require.NoError(t, Overrides{InputFile: input, ParquetFile: parquetFile}.Apply(cfg))
	require.NoError(t, config.ValidateConfig(cfg))

	var stdout bytes.Buffer
	report, err := NewScanOrchestrator(cfg, zerolog.Nop(), &stdout).ExecuteScan()
	require.NoError(t, err)
	require.NotZero(t, report.Total())

	rows, err := datastore.ReadFindings(parquetFile)
	require.NoError(t, err)
	assert.Len(t, rows, report.Total())
	for i, f := range report.Findings() {
		assert.Equal(t, input, rows[i].SourceFile)
		assert.Equal(t, f.RuleID, rows[i].RuleID)
		assert.Equal(t, int32(f.RowIndex), rows[i].RowIndex)
	}
}

func TestExitCode(t *testing.T) {
	clean := models.NewReportBuilder().AddRow().Build()
	failing := models.NewReportBuilder().AddRow().
		Append(models.Finding{RowIndex: 1, RuleID: "empty_row", Severity: models.SeverityError}).
		Build()

	tests := []struct {
		name   string
		report *models.Report
		err    error
		want   int
	}{
		{name: "clean", report: clean, want: ExitClean},
		{name: "findings", report: failing, want: ExitFindings},
		{name: "configuration", err: common.NewConfigurationError("rules_config", "", "bad"), want: ExitConfiguration},
		{name: "input", err: common.WrapError(common.NewInputError("a.csv", "empty file", nil), "loading"), want: ExitInput},
		{name: "output", err: common.WrapError(common.ErrOutput, "writing"), want: ExitOutput},
		{name: "error wins over report", report: clean, err: errors.New("boom"), want: ExitOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.report, tt.err))
		})
	}
}

func TestOverrides_Apply(t *testing.T) {
	pattern := `^[A-Z]`
	cfg := config.NewDefaultGlobalConfig()

	err := Overrides{
		InputFile:   "x.csv",
		Format:      "JSON",
		Rules:       " empty_row , ,required_field",
		Required:    "test_id",
		Pattern:     &pattern,
		StrictSteps: "false",
		FinalCheck:  true,
		LogLevel:    "DEBUG",
	}.Apply(cfg)
	require.NoError(t, err)

	assert.Equal(t, "x.csv", cfg.InputConfig.InputFile)
	assert.Equal(t, "json", cfg.ReporterConfig.Format)
	assert.Equal(t, []string{"empty_row", "required_field"}, cfg.RulesConfig.EnabledRules)
	assert.Equal(t, []string{"test_id"}, cfg.RulesConfig.RequiredFields)
	assert.Equal(t, pattern, cfg.RulesConfig.ExpectedResultPattern)
	assert.False(t, cfg.RulesConfig.StrictStepNumbering)
	assert.True(t, cfg.RulesConfig.PromoteWarnings)
	assert.False(t, cfg.RulesConfig.WarningsFail)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)

	untouched := config.NewDefaultGlobalConfig()
	require.NoError(t, Overrides{}.Apply(untouched))
	assert.Equal(t, config.NewDefaultGlobalConfig(), untouched)
}
