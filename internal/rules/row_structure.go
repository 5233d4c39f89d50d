package rules

import (
	"fmt"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// RowStructureRule flags rows whose cell count differs from the header
type RowStructureRule struct{}

// NewRowStructureRule creates the rule
func NewRowStructureRule() *RowStructureRule {
	return &RowStructureRule{}
}

// ID returns row_structure
func (r *RowStructureRule) ID() string { return config.RuleRowStructure }

// AppliesTo accepts every row
func (r *RowStructureRule) AppliesTo(models.Record) bool { return true }

// Check compares the row width with the header width from sc
func (r *RowStructureRule) Check(rec models.Record, sc *ScanContext) ([]models.Finding, error) {
	want := sc.HeaderWidth()
	if want == 0 || rec.Width == want {
		return nil, nil
	}
	return []models.Finding{
		models.NewFinding(rec, r.ID(), models.SeverityError,
			fmt.Sprintf("row has %d columns, header declares %d", rec.Width, want), ""),
	}, nil
}
