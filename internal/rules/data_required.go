package rules

import (
	"fmt"
	"strings"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// DataRequiredRule demands test data for steps whose description is one of
// the configured actions. Descriptions compare case-insensitively with
// whitespace collapsed.
type DataRequiredRule struct {
	actions map[string]struct{}
	empty   emptyMatcher
}

// NewDataRequiredRule creates the rule for the given actions
func NewDataRequiredRule(actions, emptyValues []string) *DataRequiredRule {
	r := &DataRequiredRule{
		actions: make(map[string]struct{}, len(actions)),
		empty:   newEmptyMatcher(emptyValues),
	}
	for _, a := range actions {
		r.actions[normalizeText(a)] = struct{}{}
	}
	return r
}

// ID returns data_required
func (r *DataRequiredRule) ID() string { return config.RuleDataRequired }

// AppliesTo skips blank rows
func (r *DataRequiredRule) AppliesTo(rec models.Record) bool {
	return !r.empty.isBlankRow(rec)
}

// RequiredColumns returns description and data
func (r *DataRequiredRule) RequiredColumns() []string {
	return []string{models.FieldDescription, models.FieldData}
}

// Check reports an empty data cell on a step that needs data
func (r *DataRequiredRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	description, err := rec.Require(models.FieldDescription)
	if err != nil {
		return nil, err
	}
	if _, ok := r.actions[normalizeText(description)]; !ok {
		return nil, nil
	}

	data, _ := rec.Value(models.FieldData)
	if !r.empty.isEmpty(data) {
		return nil, nil
	}
	return []models.Finding{
		models.NewFinding(rec, r.ID(), models.SeverityError,
			fmt.Sprintf("data is required for action %q", strings.TrimSpace(description)), models.FieldData),
	}, nil
}
