package rules

import (
	"fmt"

	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
)

// RequiredFieldRule emits one ERROR per configured field that is absent or empty
type RequiredFieldRule struct {
	fields []string
	empty  emptyMatcher
}

// NewRequiredFieldRule checks fields in the given order
func NewRequiredFieldRule(fields, emptyValues []string) *RequiredFieldRule {
	return &RequiredFieldRule{
		fields: append([]string(nil), fields...),
		empty:  newEmptyMatcher(emptyValues),
	}
}

// ID returns required_field
func (r *RequiredFieldRule) ID() string { return config.RuleRequiredField }

// AppliesTo accepts every row
func (r *RequiredFieldRule) AppliesTo(models.Record) bool { return true }

// RequiredColumns returns the configured fields
func (r *RequiredFieldRule) RequiredColumns() []string {
	return append([]string(nil), r.fields...)
}

// Check reports each configured field that is missing or empty
func (r *RequiredFieldRule) Check(rec models.Record, _ *ScanContext) ([]models.Finding, error) {
	var findings []models.Finding
	for _, field := range r.fields {
		v, ok := rec.Value(field)
		switch {
		case !ok:
			findings = append(findings, models.NewFinding(rec, r.ID(), models.SeverityError,
				fmt.Sprintf("required field %q is missing", field), field))
		case r.empty.isEmpty(v):
			findings = append(findings, models.NewFinding(rec, r.ID(), models.SeverityError,
				fmt.Sprintf("required field %q is empty", field), field))
		}
	}
	return findings, nil
}
