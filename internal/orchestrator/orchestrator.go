// Package orchestrator wires configuration, row loading, scanning and
// reporting into one run.
package orchestrator

import (
	"fmt"
	"io"
	"time"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/datastore"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/aleister1102/tcscanner/internal/reporter"
	"github.com/aleister1102/tcscanner/internal/rowsource"
	"github.com/aleister1102/tcscanner/internal/rules"
	"github.com/aleister1102/tcscanner/internal/scanner"
	"github.com/rs/zerolog"
)

// ScanOrchestrator runs one scan of one input file
type ScanOrchestrator struct {
	globalConfig *config.GlobalConfig
	logger       zerolog.Logger
	stdout       io.Writer
	now          func() time.Time
}

// NewScanOrchestrator creates a ScanOrchestrator. cfg must already be validated.
func NewScanOrchestrator(cfg *config.GlobalConfig, logger zerolog.Logger, stdout io.Writer) *ScanOrchestrator {
	return &ScanOrchestrator{
		globalConfig: cfg,
		logger:       logger.With().Str("module", "Orchestrator").Logger(),
		stdout:       stdout,
		now:          time.Now,
	}
}

// ExecuteScan builds the rules, loads the input, scans it, renders the
// report and exports findings when configured. Configuration problems are
// reported before the input is opened, input problems before any rule runs.
func (so *ScanOrchestrator) ExecuteScan() (*models.Report, error) {
	cfg := so.globalConfig

	ruleSet, err := rules.Build(cfg.RulesConfig)
	if err != nil {
		return nil, err
	}
	rep, err := reporter.New(cfg.ReporterConfig, so.logger)
	if err != nil {
		return nil, err
	}

	inputPath := cfg.InputConfig.InputFile
	if inputPath == "" {
		return nil, common.NewConfigurationError("input_config", "input_file", "no input file given")
	}

	table, err := rowsource.NewCSVSource(cfg.InputConfig, so.logger).Load(inputPath)
	if err != nil {
		return nil, err
	}
	if err := table.CheckColumns(rules.RequiredColumns(ruleSet), cfg.InputConfig.Columns); err != nil {
		return nil, err
	}

	so.logger.Info().
		Str("file", inputPath).
		Int("rows", len(table.Records)).
		Int("rules", len(ruleSet)).
		Msg("Scanning test cases")

	scannedAt := so.now()
	scan := scanner.NewScanner(scanner.Options{
		Columns:         table.Columns,
		PromoteWarnings: cfg.RulesConfig.PromoteWarnings,
		WarningsFail:    cfg.RulesConfig.WarningsFail,
	}, so.logger)
	report := scan.Scan(table.Records, ruleSet)

	output := reporter.NewOutputManager(so.stdout, so.logger)
	if err := output.Write(rep, report, inputPath, cfg.ReporterConfig.OutputFile); err != nil {
		return report, err
	}

	if cfg.StorageConfig.ExportEnabled() {
		if err := so.exportFindings(inputPath, scannedAt, report); err != nil {
			return report, err
		}
	}

	so.logger.Info().
		Str("status", string(report.Status())).
		Int("errors", report.Count(models.SeverityError)).
		Int("warnings", report.Count(models.SeverityWarning)).
		Msg("Scan complete")
	return report, nil
}

func (so *ScanOrchestrator) exportFindings(source string, scannedAt time.Time, report *models.Report) error {
	writer, err := datastore.NewFindingsWriter(so.globalConfig.StorageConfig, so.logger)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrOutput, err)
	}
	_, err = writer.Write(source, scannedAt, report.Findings())
	return err
}
