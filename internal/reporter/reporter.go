// Package reporter renders scan reports for people and for tools.
package reporter

import (
	"io"
	"strings"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/rs/zerolog"
)

// Reporter writes one report in a particular format
type Reporter interface {
	Render(w io.Writer, report *models.Report, source string) error
}

// RuleBreakdown counts the findings of one rule
type RuleBreakdown struct {
	RuleID   string `json:"rule_id"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// New returns the reporter selected by cfg.Format
func New(cfg config.ReporterConfig, logger zerolog.Logger) (Reporter, error) {
	switch strings.ToLower(cfg.Format) {
	case "", config.ReportFormatText:
		return NewTextReporter(cfg, logger)
	case config.ReportFormatJSON:
		return NewJSONReporter(logger), nil
	default:
		return nil, common.NewConfigurationError("reporter_config", "format", "unsupported report format: "+cfg.Format)
	}
}

// Breakdown groups findings by rule in order of first appearance
func Breakdown(findings []models.Finding) []RuleBreakdown {
	var out []RuleBreakdown
	index := make(map[string]int)
	for _, f := range findings {
		i, ok := index[f.RuleID]
		if !ok {
			i = len(out)
			index[f.RuleID] = i
			out = append(out, RuleBreakdown{RuleID: f.RuleID})
		}
		if f.Severity == models.SeverityError {
			out[i].Errors++
		} else {
			out[i].Warnings++
		}
	}
	return out
}
