package orchestrator

import (
	"errors"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/models"
)

// Process exit codes
const (
	ExitClean         = 0
	ExitFindings      = 1
	ExitConfiguration = 2
	ExitInput         = 3
	ExitOutput        = 4
)

// ExitCode maps the outcome of a run to a process exit code.
// Errors take precedence over the report.
func ExitCode(report *models.Report, err error) int {
	switch {
	case err == nil:
		if report == nil || report.IsClean() {
			return ExitClean
		}
		return ExitFindings
	case errors.Is(err, common.ErrInvalidConfiguration):
		return ExitConfiguration
	case errors.Is(err, common.ErrInvalidInput):
		return ExitInput
	default:
		return ExitOutput
	}
}
