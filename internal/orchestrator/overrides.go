package orchestrator

import (
	"strconv"
	"strings"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
)

// Overrides carries command line values that take precedence over the
// configuration file. Zero values leave the file setting untouched.
type Overrides struct {
	ConfigFile   string
	InputFile    string
	Format       string
	OutputFile   string
	Rules        string // comma separated rule ids
	Required     string // comma separated field names
	Pattern      *string
	StrictSteps  string // "true" or "false"
	WarningsFail bool
	FinalCheck   bool
	ParquetFile  string
	LogLevel     string
}

// Apply writes the overrides into cfg
func (o Overrides) Apply(cfg *config.GlobalConfig) error {
	if o.InputFile != "" {
		cfg.InputConfig.InputFile = o.InputFile
	}
	if o.Format != "" {
		cfg.ReporterConfig.Format = strings.ToLower(o.Format)
	}
	if o.OutputFile != "" {
		cfg.ReporterConfig.OutputFile = o.OutputFile
	}
	if o.Rules != "" {
		cfg.RulesConfig.EnabledRules = splitList(o.Rules)
	}
	if o.Required != "" {
		cfg.RulesConfig.RequiredFields = splitList(o.Required)
	}
	if o.Pattern != nil {
		cfg.RulesConfig.ExpectedResultPattern = *o.Pattern
	}
	if o.StrictSteps != "" {
		strict, err := strconv.ParseBool(o.StrictSteps)
		if err != nil {
			return common.NewConfigurationError("rules_config", "strict_step_numbering", "invalid -strict-steps value "+strconv.Quote(o.StrictSteps))
		}
		cfg.RulesConfig.StrictStepNumbering = strict
	}
	if o.WarningsFail {
		cfg.RulesConfig.WarningsFail = true
	}
	if o.FinalCheck {
		cfg.RulesConfig.PromoteWarnings = true
	}
	if o.ParquetFile != "" {
		cfg.StorageConfig.ParquetFile = o.ParquetFile
	}
	if o.LogLevel != "" {
		cfg.LogConfig.LogLevel = strings.ToLower(o.LogLevel)
	}
	return nil
}

// splitList splits a comma separated flag value, dropping blank entries
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
