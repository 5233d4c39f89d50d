package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// GenericExpectedResultRule warns about expected results that verify nothing,
// either a known generic phrase or text shorter than minLength runes.
type GenericExpectedResultRule struct {
	phrases   map[string]struct{}
	minLength int
	empty     emptyMatcher
}

// NewGenericExpectedResultRule creates the rule; phrases compare case-insensitively
func NewGenericExpectedResultRule(phrases []string, minLength int, emptyValues []string) *GenericExpectedResultRule {
	r := &GenericExpectedResultRule{
		phrases:   make(map[string]struct{}, len(phrases)),
		minLength: minLength,
		empty:     newEmptyMatcher(emptyValues),
	}
	for _, p := range phrases {
		r.phrases[normalizeText(p)] = struct{}{}
	}
	return r
}

// ID returns generic_expected_result
func (r *GenericExpectedResultRule) ID() string { return config.RuleGenericExpectedResult }

// AppliesTo skips blank rows
func (r *GenericExpectedResultRule) AppliesTo(rec models.Record) bool {
	return !r.empty.isBlankRow(rec)
}

// RequiredColumns returns expected_result
func (r *GenericExpectedResultRule) RequiredColumns() []string {
	return []string{models.FieldExpectedResult}
}

// Check warns about generic or too short expected results
func (r *GenericExpectedResultRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	raw, err := rec.Require(models.FieldExpectedResult)
	if err != nil {
		return nil, err
	}
	// Empty values belong to required_field and expected_result_format
	if r.empty.isEmpty(raw) {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if _, generic := r.phrases[normalizeText(value)]; generic {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityWarning,
				fmt.Sprintf("expected result is too generic (%q)", value), models.FieldExpectedResult),
		}, nil
	}
	if utf8.RuneCountInString(value) < r.minLength {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityWarning,
				fmt.Sprintf("expected result is too short (%q)", value), models.FieldExpectedResult),
		}, nil
	}
	return nil, nil
}
