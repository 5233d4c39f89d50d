package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/tcscanner/internal/common"
	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/go-playground/validator/v10"
)

var ruleIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// newValidator returns a validator with the custom tags used by the config structs.
// Field names in errors are the yaml keys.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("reportformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", ReportFormatText, ReportFormatJSON:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("codec", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "zstd", "snappy", "gzip", "none":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("ruleid", func(fl validator.FieldLevel) bool {
		return ruleIDPattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})

	// encoding/csv rejects these as delimiters
	_ = validate.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		d := fl.Field().String()
		if d == "" {
			return true
		}
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) || r == utf8.RuneError {
			return false
		}
		return r != '"' && r != '\r' && r != '\n'
	})

	_ = validate.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		c := fl.Field().String()
		if c == "" {
			return true
		}
		return strings.TrimSpace(c) != "" && !strings.ContainsAny(c, "\r\n")
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure.
// All problems are reported together; the error wraps common.ErrInvalidConfiguration.
func ValidateConfig(cfg *GlobalConfig) error {
	var messages []string

	if err := newValidator().Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("%w: configuration validation error: %v", common.ErrInvalidConfiguration, err)
		}
		for _, e := range errs {
			messages = append(messages, formatFieldError(e))
		}
	}

	messages = append(messages, validateColumnMapping(cfg.InputConfig.Columns)...)
	messages = append(messages, validateRuleDependencies(cfg.RulesConfig)...)

	if len(messages) > 0 {
		return fmt.Errorf("%w: configuration validation failed:\n  %s", common.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	fieldName := e.Namespace()
	if idx := strings.Index(fieldName, "."); idx >= 0 {
		fieldName = fieldName[idx+1:]
	}
	msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
	if e.Param() != "" {
		msg += fmt.Sprintf(" (expected: %s)", e.Param())
	}
	if e.Value() != nil && e.Value() != "" {
		msg += fmt.Sprintf(", actual: '%v'", e.Value())
	}
	return msg
}

// validateColumnMapping rejects two logical columns bound to one header
func validateColumnMapping(m ColumnMapping) []string {
	var messages []string
	seen := make(map[string]string, 5)
	for _, logical := range models.LogicalFields() {
		header := m.HeaderFor(logical)
		if other, dup := seen[header]; dup {
			messages = append(messages, fmt.Sprintf("input_config.columns: '%s' and '%s' both map to header '%s'", other, logical, header))
			continue
		}
		seen[header] = logical
	}
	return messages
}

// validateRuleDependencies catches option combinations that cannot work
func validateRuleDependencies(rc RulesConfig) []string {
	var messages []string
	if rc.IsEnabled(RuleDataRequired) && len(rc.DataRequiredActions) == 0 {
		messages = append(messages, fmt.Sprintf("rules_config.data_required_actions: must not be empty when '%s' is enabled", RuleDataRequired))
	}
	if rc.IsEnabled(RuleRequiredField) && len(rc.RequiredFields) == 0 {
		messages = append(messages, fmt.Sprintf("rules_config.required_fields: must not be empty when '%s' is enabled", RuleRequiredField))
	}
	if rc.IsEnabled(RuleCoreSteps) {
		core := rc.CoreSteps
		if len(core.Steps) == 0 {
			messages = append(messages, fmt.Sprintf("rules_config.core_steps.steps: must not be empty when '%s' is enabled", RuleCoreSteps))
		}
		if core.MinAnchorMatches > len(core.Anchors) {
			messages = append(messages, fmt.Sprintf("rules_config.core_steps.min_anchor_matches: %d exceeds the %d configured anchors", core.MinAnchorMatches, len(core.Anchors)))
		}
	}
	return messages
}
