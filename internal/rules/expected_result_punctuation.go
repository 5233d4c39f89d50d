package rules

import (
	"strings"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// ExpectedResultPunctuationRule warns when an expected result does not end with a period
type ExpectedResultPunctuationRule struct {
	empty emptyMatcher
}

// NewExpectedResultPunctuationRule creates the rule
func NewExpectedResultPunctuationRule(emptyValues []string) *ExpectedResultPunctuationRule {
	return &ExpectedResultPunctuationRule{empty: newEmptyMatcher(emptyValues)}
}

// ID returns expected_result_punctuation
func (r *ExpectedResultPunctuationRule) ID() string { return config.RuleExpectedResultPunctuation }

// AppliesTo skips blank rows
func (r *ExpectedResultPunctuationRule) AppliesTo(rec models.Record) bool {
	return !r.empty.isBlankRow(rec)
}

// RequiredColumns returns expected_result
func (r *ExpectedResultPunctuationRule) RequiredColumns() []string {
	return []string{models.FieldExpectedResult}
}

// Check warns when a non-empty expected result lacks a final period
func (r *ExpectedResultPunctuationRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	raw, err := rec.Require(models.FieldExpectedResult)
	if err != nil {
		return nil, err
	}
	if r.empty.isEmpty(raw) || strings.HasSuffix(strings.TrimSpace(raw), ".") {
		return nil, nil
	}
	return []models.Finding{
		models.NewFinding(rec, r.ID(), models.SeverityWarning,
			"expected result should end with a period", models.FieldExpectedResult),
	}, nil
}
