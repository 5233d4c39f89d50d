package config

import "github.com/aleister1102/tcscanner/internal/models"

// RulesConfig selects the rules to run and their parameters
type RulesConfig struct {
	EnabledRules            []string        `json:"enabled_rules" yaml:"enabled_rules" validate:"dive,ruleid"`
	RequiredFields          []string        `json:"required_fields" yaml:"required_fields" validate:"dive,required"`
	ExpectedResultPattern   string          `json:"expected_result_pattern,omitempty" yaml:"expected_result_pattern,omitempty" validate:"omitempty,regexp"`
	StrictStepNumbering     bool            `json:"strict_step_numbering" yaml:"strict_step_numbering"`
	WarningsFail            bool            `json:"warnings_fail" yaml:"warnings_fail"`
	PromoteWarnings         bool            `json:"promote_warnings" yaml:"promote_warnings"`
	EmptyValues             []string        `json:"empty_values,omitempty" yaml:"empty_values,omitempty"`
	DataRequiredActions     []string        `json:"data_required_actions,omitempty" yaml:"data_required_actions,omitempty" validate:"dive,required"`
	GenericPhrases          []string        `json:"generic_phrases,omitempty" yaml:"generic_phrases,omitempty"`
	MinExpectedResultLength int             `json:"min_expected_result_length" yaml:"min_expected_result_length" validate:"min=0"`
	CoreSteps               CoreStepsConfig `json:"core_steps,omitempty" yaml:"core_steps,omitempty"`
}

// CoreStep is one step every standard test case must open with
type CoreStep struct {
	Action   string `json:"action" yaml:"action" validate:"required"`
	Expected string `json:"expected" yaml:"expected" validate:"required"`
}

// CoreAnchor marks a test case as standard when the step at position Step
// carries Action
type CoreAnchor struct {
	Step   int    `json:"step" yaml:"step" validate:"min=1"`
	Action string `json:"action" yaml:"action" validate:"required"`
}

// CoreStepsConfig configures the core_steps rule.
// A test case whose anchors match at least MinAnchorMatches times must
// start with Steps, in order.
type CoreStepsConfig struct {
	Steps            []CoreStep   `json:"steps,omitempty" yaml:"steps,omitempty" validate:"dive"`
	Anchors          []CoreAnchor `json:"anchors,omitempty" yaml:"anchors,omitempty" validate:"dive"`
	MinAnchorMatches int          `json:"min_anchor_matches" yaml:"min_anchor_matches" validate:"min=0"`
}

// NewDefaultRulesConfig creates default rules configuration
func NewDefaultRulesConfig() RulesConfig {
	return RulesConfig{
		EnabledRules: DefaultEnabledRules(),
		RequiredFields: []string{
			models.FieldTestID,
			models.FieldStepNumber,
			models.FieldDescription,
			models.FieldExpectedResult,
		},
		StrictStepNumbering:     DefaultStrictStepNumbering,
		GenericPhrases:          DefaultGenericPhrases(),
		MinExpectedResultLength: DefaultMinExpectedResultLength,
		CoreSteps: CoreStepsConfig{
			MinAnchorMatches: DefaultCoreMinAnchorMatches,
		},
	}
}

// IsEnabled reports whether ruleID appears in EnabledRules
func (c RulesConfig) IsEnabled(ruleID string) bool {
	for _, id := range c.EnabledRules {
		if id == ruleID {
			return true
		}
	}
	return false
}
