package rules

import (
	"fmt"
	"strings"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// CoreStepsRule checks that standard test cases open with the configured
// core steps. A test case is standard when enough anchor actions sit at
// their step positions. Positions count the non-blank rows of a test_id in
// file order. Comparison is exact after trimming and collapsing whitespace.
type CoreStepsRule struct {
	steps      []config.CoreStep
	anchors    []config.CoreAnchor
	minMatches int
	windowSize int
	minRows    int
	empty      emptyMatcher
}

// NewCoreStepsRule builds the rule from the core_steps section
func NewCoreStepsRule(cfg config.CoreStepsConfig, emptyValues []string) *CoreStepsRule {
	r := &CoreStepsRule{
		steps:      cfg.Steps,
		anchors:    cfg.Anchors,
		minMatches: cfg.MinAnchorMatches,
		empty:      newEmptyMatcher(emptyValues),
	}
	for _, a := range cfg.Anchors {
		if a.Step > r.minRows {
			r.minRows = a.Step
		}
	}
	r.windowSize = max(len(cfg.Steps), r.minRows)
	return r
}

// ID returns core_steps
func (r *CoreStepsRule) ID() string { return config.RuleCoreSteps }

// AppliesTo selects non-blank rows that belong to a test case
func (r *CoreStepsRule) AppliesTo(rec models.Record) bool {
	testID, ok := rec.Value(models.FieldTestID)
	return ok && strings.TrimSpace(testID) != "" && !r.empty.isBlankRow(rec)
}

// RequiredColumns lists the columns the core steps are compared on
func (r *CoreStepsRule) RequiredColumns() []string {
	return []string{models.FieldTestID, models.FieldDescription, models.FieldExpectedResult}
}

// Check collects the leading rows of each test case and evaluates the
// test case as soon as enough rows are seen
func (r *CoreStepsRule) Check(rec models.Record, sc *ScanContext) ([]models.Finding, error) {
	if r.windowSize == 0 {
		return nil, nil
	}
	testID, _ := rec.Value(models.FieldTestID)
	w := sc.window(strings.TrimSpace(testID))
	if w.closed {
		return nil, nil
	}

	w.rows = append(w.rows, rec)
	if len(w.rows) < r.windowSize {
		return nil, nil
	}
	w.closed = true
	return r.evaluate(w.rows), nil
}

// Finish evaluates test cases that ended before filling their window.
// Test cases shorter than the highest anchor step are not checked.
func (r *CoreStepsRule) Finish(sc *ScanContext) ([]models.Finding, error) {
	var findings []models.Finding
	for _, w := range sc.openWindows() {
		w.closed = true
		if len(w.rows) < r.minRows {
			continue
		}
		findings = append(findings, r.evaluate(w.rows)...)
	}
	return findings, nil
}

// isStandard counts anchor actions found at their step positions
func (r *CoreStepsRule) isStandard(rows []models.Record) bool {
	matches := 0
	for _, a := range r.anchors {
		description, _ := rows[a.Step-1].Value(models.FieldDescription)
		if collapseSpaces(description) == collapseSpaces(a.Action) {
			matches++
		}
	}
	return matches >= r.minMatches
}

func (r *CoreStepsRule) evaluate(rows []models.Record) []models.Finding {
	if !r.isStandard(rows) {
		return nil
	}

	var findings []models.Finding
	for i := 0; i < len(r.steps) && i < len(rows); i++ {
		rec := rows[i]
		want := r.steps[i]

		description, _ := rec.Value(models.FieldDescription)
		if collapseSpaces(description) != collapseSpaces(want.Action) {
			findings = append(findings, models.NewFinding(rec, r.ID(), models.SeverityWarning,
				fmt.Sprintf("core step %d description mismatch: expected %q, found %q", i+1, collapseSpaces(want.Action), collapseSpaces(description)),
				models.FieldDescription))
		}

		expected, _ := rec.Value(models.FieldExpectedResult)
		if collapseSpaces(expected) != collapseSpaces(want.Expected) {
			findings = append(findings, models.NewFinding(rec, r.ID(), models.SeverityWarning,
				fmt.Sprintf("core step %d expected result mismatch: expected %q, found %q", i+1, collapseSpaces(want.Expected), collapseSpaces(expected)),
				models.FieldExpectedResult))
		}
	}
	return findings
}
