package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// ExpectedResultFormatRule warns about blank expected results and, when a
// pattern is configured, about trimmed values that do not match it.
type ExpectedResultFormatRule struct {
	pattern *regexp.Regexp
}

// NewExpectedResultFormatRule builds the rule; pattern may be nil.
func NewExpectedResultFormatRule(pattern *regexp.Regexp) *ExpectedResultFormatRule {
	return &ExpectedResultFormatRule{pattern: pattern}
}

// ID returns expected_result_format
func (r *ExpectedResultFormatRule) ID() string { return config.RuleExpectedResultFormat }

// AppliesTo accepts every row
func (r *ExpectedResultFormatRule) AppliesTo(models.Record) bool { return true }

// RequiredColumns returns expected_result
func (r *ExpectedResultFormatRule) RequiredColumns() []string {
	return []string{models.FieldExpectedResult}
}

// Check warns about a blank or non-matching expected result
func (r *ExpectedResultFormatRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	raw, err := rec.Require(models.FieldExpectedResult)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityWarning,
				"expected result is blank", models.FieldExpectedResult),
		}, nil
	}

	if r.pattern != nil && !r.pattern.MatchString(value) {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityWarning,
				fmt.Sprintf("expected result %q does not match pattern %s", value, r.pattern.String()), models.FieldExpectedResult),
		}, nil
	}
	return nil, nil
}
