package rules

import (
	"regexp"
	"strings"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/config"
)

const configSection = "rules_config"

type ruleConstructor func(cfg config.RulesConfig, pattern *regexp.Regexp) Rule

var constructors = map[string]ruleConstructor{
	config.RuleRowStructure: func(config.RulesConfig, *regexp.Regexp) Rule {
		return NewRowStructureRule()
	},
	config.RuleEmptyRow: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewEmptyRowRule(cfg.EmptyValues)
	},
	config.RuleRequiredField: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewRequiredFieldRule(cfg.RequiredFields, cfg.EmptyValues)
	},
	config.RuleStepNumbering: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewStepNumberingRule(cfg.StrictStepNumbering)
	},
	config.RuleExpectedResultFormat: func(_ config.RulesConfig, pattern *regexp.Regexp) Rule {
		return NewExpectedResultFormatRule(pattern)
	},
	config.RuleDataRequired: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewDataRequiredRule(cfg.DataRequiredActions, cfg.EmptyValues)
	},
	config.RuleGenericExpectedResult: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewGenericExpectedResultRule(cfg.GenericPhrases, cfg.MinExpectedResultLength, cfg.EmptyValues)
	},
	config.RuleExpectedResultPunctuation: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewExpectedResultPunctuationRule(cfg.EmptyValues)
	},
	config.RuleCoreSteps: func(cfg config.RulesConfig, _ *regexp.Regexp) Rule {
		return NewCoreStepsRule(cfg.CoreSteps, cfg.EmptyValues)
	},
}

// KnownRuleIDs lists every supported rule id, defaults first
func KnownRuleIDs() []string {
	return []string{
		config.RuleRowStructure,
		config.RuleEmptyRow,
		config.RuleRequiredField,
		config.RuleStepNumbering,
		config.RuleExpectedResultFormat,
		config.RuleDataRequired,
		config.RuleGenericExpectedResult,
		config.RuleExpectedResultPunctuation,
		config.RuleCoreSteps,
	}
}

// Build constructs the enabled rules in configuration order.
// All problems are reported in one *common.ConfigurationError.
func Build(cfg config.RulesConfig) ([]Rule, error) {
	var problems common.ErrorCollector

	var pattern *regexp.Regexp
	if cfg.ExpectedResultPattern != "" {
		compiled, err := regexp.Compile(cfg.ExpectedResultPattern)
		problems.AddWithContext(err, "expected_result_pattern")
		pattern = compiled
	}

	seenFields := make(map[string]bool, len(cfg.RequiredFields))
	for _, field := range cfg.RequiredFields {
		switch {
		case strings.TrimSpace(field) == "":
			problems.Add(common.NewError("required_fields: blank field name"))
		case seenFields[field]:
			problems.Add(common.NewError("required_fields: duplicate field %q", field))
		}
		seenFields[field] = true
	}

	rules := make([]Rule, 0, len(cfg.EnabledRules))
	seenRules := make(map[string]bool, len(cfg.EnabledRules))
	for _, id := range cfg.EnabledRules {
		if seenRules[id] {
			problems.Add(common.NewError("enabled_rules: duplicate rule id %q", id))
			continue
		}
		seenRules[id] = true

		construct, ok := constructors[id]
		if !ok {
			problems.Add(common.NewError("enabled_rules: unknown rule id %q (known: %s)", id, strings.Join(KnownRuleIDs(), ", ")))
			continue
		}
		rules = append(rules, construct(cfg, pattern))
	}

	if problems.HasErrors() {
		return nil, common.NewConfigurationError(configSection, "", problems.Error().Error())
	}
	return rules, nil
}

// RequiredColumns returns the distinct logical columns the rules need, in first-use order
func RequiredColumns(rules []Rule) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, r := range rules {
		req, ok := r.(ColumnRequirer)
		if !ok {
			continue
		}
		for _, c := range req.RequiredColumns() {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	return columns
}
