package rules

import (
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// EmptyRowRule flags rows in which every cell is empty
type EmptyRowRule struct {
	empty emptyMatcher
}

// NewEmptyRowRule creates the rule; emptyValues extend what counts as empty
func NewEmptyRowRule(emptyValues []string) *EmptyRowRule {
	return &EmptyRowRule{empty: newEmptyMatcher(emptyValues)}
}

// ID returns empty_row
func (r *EmptyRowRule) ID() string { return config.RuleEmptyRow }

// AppliesTo accepts every row
func (r *EmptyRowRule) AppliesTo(models.Record) bool { return true }

// Check emits one ERROR for a row with no content
func (r *EmptyRowRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	if !r.empty.isBlankRow(rec) {
		return nil, nil
	}
	return []models.Finding{
		models.NewFinding(rec, r.ID(), models.SeverityError, "row is empty", ""),
	}, nil
}
