package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// StepNumberingRule checks that steps of one test case count up by one.
// The first row of a test_id sets the baseline. After a break the baseline
// moves to the actual step so one gap is reported once.
type StepNumberingRule struct {
	strict bool
}

// NewStepNumberingRule creates the rule; a non-strict rule reports breaks as WARNING
func NewStepNumberingRule(strict bool) *StepNumberingRule {
	return &StepNumberingRule{strict: strict}
}

// ID returns step_numbering
func (r *StepNumberingRule) ID() string { return config.RuleStepNumbering }

// AppliesTo selects rows with a non-blank test_id
func (r *StepNumberingRule) AppliesTo(rec models.Record) bool {
	testID, ok := rec.Value(models.FieldTestID)
	return ok && strings.TrimSpace(testID) != ""
}

// RequiredColumns returns test_id and step_number
func (r *StepNumberingRule) RequiredColumns() []string {
	return []string{models.FieldTestID, models.FieldStepNumber}
}

// Check compares the step with the last one recorded for the test case
func (r *StepNumberingRule) Check(rec models.Record, sc *ScanContext) ([]models.Finding, error) {
	raw, err := rec.Require(models.FieldStepNumber)
	if err != nil {
		return nil, err
	}
	testID, _ := rec.Value(models.FieldTestID)
	testID = strings.TrimSpace(testID)

	if strings.TrimSpace(raw) == "" {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityError,
				fmt.Sprintf("step number is blank for test %q", testID), models.FieldStepNumber),
		}, nil
	}

	step, ok := parseStep(raw)
	if !ok {
		return []models.Finding{
			models.NewFinding(rec, r.ID(), models.SeverityError,
				fmt.Sprintf("step number %q is not an integer", strings.TrimSpace(raw)), models.FieldStepNumber),
		}, nil
	}

	last, seen := sc.LastStep(testID)
	sc.SetLastStep(testID, step)
	if !seen || step == last+1 {
		return nil, nil
	}

	severity := models.SeverityError
	if !r.strict {
		severity = models.SeverityWarning
	}
	return []models.Finding{
		models.NewFinding(rec, r.ID(), severity,
			fmt.Sprintf("expected step %d, got %d", last+1, step), models.FieldStepNumber),
	}, nil
}

// parseStep accepts integers and integral decimals such as "2.0"
func parseStep(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
