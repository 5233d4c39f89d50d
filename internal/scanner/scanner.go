// Package scanner runs the enabled rules over the rows of one table.
package scanner

import (
	"fmt"

	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/aleister1102/tcscanner/internal/rules"
	"github.com/rs/zerolog"
)

// Options tune how a scan builds its report
type Options struct {
	// Columns is the header of the scanned table; its length is the expected row width.
	Columns []string
	// PromoteWarnings reports WARNING findings as ERROR.
	PromoteWarnings bool
	// WarningsFail makes a report with warnings unclean.
	WarningsFail bool
}

// Scanner applies rules row by row and collects their findings in order.
// It keeps no state between Scan calls.
type Scanner struct {
	opts   Options
	logger zerolog.Logger
}

// NewScanner creates a scanner
func NewScanner(opts Options, logger zerolog.Logger) *Scanner {
	opts.Columns = append([]string(nil), opts.Columns...)
	return &Scanner{
		opts:   opts,
		logger: logger.With().Str("module", "Scanner").Logger(),
	}
}

// Scan visits every record in order and, for each, every rule in order.
// Findings are appended as rules return them. A rule that fails or panics
// yields one ERROR finding under its own id and the scan moves on.
func (s *Scanner) Scan(records []models.Record, ruleSet []rules.Rule) *models.Report {
	sc := rules.NewScanContext(len(s.opts.Columns))
	builder := models.NewReportBuilder().
		WithColumns(s.opts.Columns).
		WithPromoteWarnings(s.opts.PromoteWarnings).
		WithWarningsFail(s.opts.WarningsFail)

	s.logger.Debug().Int("rows", len(records)).Int("rules", len(ruleSet)).Msg("Starting scan")

	for _, rec := range records {
		builder.AddRow()
		for _, rule := range ruleSet {
			findings, err := s.apply(rule, rec, sc)
			if err != nil {
				s.logger.Warn().Err(err).Str("rule_id", rule.ID()).Int("row", rec.Index).Msg("Rule failed on row")
				builder.Append(faultFinding(rule.ID(), rec, err))
				continue
			}
			builder.Append(findings...)
		}
	}
	s.finish(records, ruleSet, sc, builder)

	report := builder.Build()
	s.logger.Debug().
		Int("findings", report.Total()).
		Int("errors", report.Count(models.SeverityError)).
		Int("warnings", report.Count(models.SeverityWarning)).
		Msg("Scan finished")
	return report
}

// apply runs one rule on one record, turning a panic into an error
func (s *Scanner) apply(rule rules.Rule, rec models.Record, sc *rules.ScanContext) (findings []models.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if !rule.AppliesTo(rec) {
		return nil, nil
	}
	findings, err = rule.Check(rec, sc)
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// finish lets rules that defer findings to the end of the scan report them.
// A failure is attributed to the last row.
func (s *Scanner) finish(records []models.Record, ruleSet []rules.Rule, sc *rules.ScanContext, builder *models.ReportBuilder) {
	if len(records) == 0 {
		return
	}
	last := records[len(records)-1]
	for _, rule := range ruleSet {
		finisher, ok := rule.(rules.Finisher)
		if !ok {
			continue
		}
		findings, err := s.applyFinish(finisher, sc)
		if err != nil {
			s.logger.Warn().Err(err).Str("rule_id", rule.ID()).Msg("Rule failed at end of scan")
			builder.Append(faultFinding(rule.ID(), last, err))
			continue
		}
		builder.Append(findings...)
	}
}

func (s *Scanner) applyFinish(finisher rules.Finisher, sc *rules.ScanContext) (findings []models.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return finisher.Finish(sc)
}

func faultFinding(ruleID string, rec models.Record, err error) models.Finding {
	return models.NewFinding(rec, ruleID, models.SeverityError,
		fmt.Sprintf("rule %s failed on this row: %v", ruleID, err), "")
}
