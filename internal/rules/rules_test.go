package rules

import (
	"regexp"
	"testing"

	"github.com/aleister1102/tcscanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(index int, fields map[string]string) models.Record {
	return models.NewRecord(index, index+1, len(fields), fields)
}

func caseRow(index int, testID, step, description, expected string) models.Record {
	return row(index, map[string]string{
		models.FieldTestID:         testID,
		models.FieldStepNumber:     step,
		models.FieldDescription:    description,
		models.FieldExpectedResult: expected,
	})
}

func check(t *testing.T, r Rule, rec models.Record, sc *ScanContext) []models.Finding {
	t.Helper()
	if !r.AppliesTo(rec) {
		return nil
	}
	findings, err := r.Check(rec, sc)
	require.NoError(t, err)
	return findings
}

func TestRowStructureRule(t *testing.T) {
	r := NewRowStructureRule()
	sc := NewScanContext(4)

	assert.Empty(t, check(t, r, caseRow(1, "T1", "1", "a", "b"), sc))

	short := models.NewRecord(2, 3, 2, map[string]string{models.FieldTestID: "T1", models.FieldStepNumber: "2"})
	findings := check(t, r, short, sc)
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityError, findings[0].Severity)
	assert.Equal(t, "row has 2 columns, header declares 4", findings[0].Message)
	assert.Empty(t, findings[0].FieldName)

	assert.Empty(t, check(t, r, short, NewScanContext(0)), "unknown header width disables the check")
}

func TestEmptyRowRule(t *testing.T) {
	tests := []struct {
		name        string
		rec         models.Record
		emptyValues []string
		want        int
	}{
		{name: "all blank", rec: caseRow(1, "", " ", "\t", ""), want: 1},
		{name: "no cells", rec: row(1, map[string]string{}), want: 1},
		{name: "one value", rec: caseRow(1, "", "", "click", ""), want: 0},
		{name: "placeholders count as empty", rec: caseRow(1, "-", "N/A", "", ""), emptyValues: []string{"-", "n/a"}, want: 1},
		{name: "placeholders kept by default", rec: caseRow(1, "-", "N/A", "", ""), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := check(t, NewEmptyRowRule(tt.emptyValues), tt.rec, NewScanContext(4))
			require.Len(t, findings, tt.want)
			for _, f := range findings {
				assert.Equal(t, "empty_row", f.RuleID)
				assert.Equal(t, models.SeverityError, f.Severity)
				assert.Empty(t, f.FieldName)
			}
		})
	}
}

func TestRequiredFieldRule(t *testing.T) {
	required := []string{models.FieldTestID, models.FieldExpectedResult}

	tests := []struct {
		name   string
		rec    models.Record
		fields []string
	}{
		{name: "all present", rec: caseRow(1, "T1", "1", "a", "ok")},
		{name: "blank expected result", rec: caseRow(2, "T1", "2", "b", ""), fields: []string{models.FieldExpectedResult}},
		{name: "whitespace counts as blank", rec: caseRow(2, " ", "2", "b", "x"), fields: []string{models.FieldTestID}},
		{name: "both missing from row", rec: row(3, map[string]string{models.FieldDescription: "c"}), fields: required},
	}

	r := NewRequiredFieldRule(required, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := check(t, r, tt.rec, NewScanContext(4))
			require.Len(t, findings, len(tt.fields))
			for i, f := range findings {
				assert.Equal(t, tt.fields[i], f.FieldName)
				assert.Equal(t, "required_field", f.RuleID)
				assert.Equal(t, models.SeverityError, f.Severity)
				assert.Equal(t, tt.rec.Index, f.RowIndex)
			}
		})
	}

	assert.Equal(t, required, r.RequiredColumns())
}

func TestRequiredFieldRule_EmptyValues(t *testing.T) {
	r := NewRequiredFieldRule([]string{models.FieldExpectedResult}, []string{"n/a"})
	findings := check(t, r, caseRow(1, "T1", "1", "a", " N/A "), NewScanContext(4))
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "is empty")
}

func TestStepNumberingRule(t *testing.T) {
	type step struct {
		testID string
		step   string
	}
	tests := []struct {
		name     string
		strict   bool
		steps    []step
		messages map[int]string
		severity models.Severity
	}{
		{
			name:   "consecutive steps",
			strict: true,
			steps:  []step{{"T1", "1"}, {"T1", "2"}, {"T1", "3"}},
		},
		{
			name:     "gap",
			strict:   true,
			steps:    []step{{"T1", "1"}, {"T1", "3"}},
			messages: map[int]string{2: "expected step 2, got 3"},
			severity: models.SeverityError,
		},
		{
			name:     "gap is a warning when not strict",
			strict:   false,
			steps:    []step{{"T1", "1"}, {"T1", "3"}},
			messages: map[int]string{2: "expected step 2, got 3"},
			severity: models.SeverityWarning,
		},
		{
			name:     "baseline moves after a break",
			strict:   true,
			steps:    []step{{"T1", "1"}, {"T1", "3"}, {"T1", "4"}, {"T1", "4"}},
			messages: map[int]string{2: "expected step 2, got 3", 4: "expected step 5, got 4"},
			severity: models.SeverityError,
		},
		{
			name:   "first row of each test is the baseline",
			strict: true,
			steps:  []step{{"T1", "5"}, {"T2", "1"}, {"T1", "6"}, {"T2", "2"}},
		},
		{
			name:   "decimal and padded steps",
			strict: true,
			steps:  []step{{"T1", " 1 "}, {"T1", "2.0"}, {"T1", "3"}},
		},
		{
			name:   "rows without test id are skipped",
			strict: true,
			steps:  []step{{"T1", "1"}, {"", "9"}, {"T1", "2"}},
		},
		{
			name:     "non numeric step leaves the baseline untouched",
			strict:   false,
			steps:    []step{{"T1", "1"}, {"T1", "two"}, {"T1", "2"}},
			messages: map[int]string{2: `step number "two" is not an integer`},
			severity: models.SeverityError,
		},
		{
			name:     "fractional step",
			strict:   true,
			steps:    []step{{"T1", "1.5"}},
			messages: map[int]string{1: `step number "1.5" is not an integer`},
			severity: models.SeverityError,
		},
		{
			name:     "blank step",
			strict:   true,
			steps:    []step{{"T1", "  "}},
			messages: map[int]string{1: `step number is blank for test "T1"`},
			severity: models.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStepNumberingRule(tt.strict)
			sc := NewScanContext(4)
			got := map[int]string{}
			for i, s := range tt.steps {
				for _, f := range check(t, r, caseRow(i+1, s.testID, s.step, "d", "e"), sc) {
					got[f.RowIndex] = f.Message
					assert.Equal(t, tt.severity, f.Severity)
					assert.Equal(t, models.FieldStepNumber, f.FieldName)
				}
			}
			if len(tt.messages) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.messages, got)
			}
		})
	}
}

func TestStepNumberingRule_MissingStepColumnIsAnError(t *testing.T) {
	r := NewStepNumberingRule(true)
	rec := row(1, map[string]string{models.FieldTestID: "T1"})
	require.True(t, r.AppliesTo(rec))

	_, err := r.Check(rec, NewScanContext(1))
	assert.ErrorIs(t, err, models.ErrMissingField)
}

func TestExpectedResultFormatRule(t *testing.T) {
	pattern := regexp.MustCompile(`^(pass|fail|blocked)$`)

	tests := []struct {
		name    string
		pattern *regexp.Regexp
		value   string
		message string
	}{
		{name: "any text without pattern", value: "N/A"},
		{name: "blank", value: "   ", message: "expected result is blank"},
		{name: "blank with pattern", pattern: pattern, value: "", message: "expected result is blank"},
		{name: "not matching", pattern: pattern, value: "N/A", message: `expected result "N/A" does not match pattern ^(pass|fail|blocked)$`},
		{name: "matching after trim", pattern: pattern, value: " pass "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := check(t, NewExpectedResultFormatRule(tt.pattern), caseRow(1, "T1", "1", "a", tt.value), NewScanContext(4))
			if tt.message == "" {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, models.SeverityWarning, findings[0].Severity)
			assert.Equal(t, tt.message, findings[0].Message)
			assert.Equal(t, models.FieldExpectedResult, findings[0].FieldName)
		})
	}
}

func TestDataRequiredRule(t *testing.T) {
	r := NewDataRequiredRule([]string{"Search for patient using name or SSN"}, []string{"-"})

	withData := func(description, data string) models.Record {
		return row(1, map[string]string{
			models.FieldDescription:    description,
			models.FieldData:           data,
			models.FieldExpectedResult: "x",
		})
	}

	assert.Len(t, check(t, r, withData("  search for   PATIENT using name or ssn", ""), NewScanContext(3)), 1)
	assert.Len(t, check(t, r, withData("search for patient using name or ssn", "-"), NewScanContext(3)), 1)
	assert.Empty(t, check(t, r, withData("search for patient using name or ssn", "John Doe"), NewScanContext(3)))
	assert.Empty(t, check(t, r, withData("open the chart", ""), NewScanContext(3)))

	blank := row(2, map[string]string{models.FieldDescription: "", models.FieldData: ""})
	assert.False(t, r.AppliesTo(blank))

	findings := check(t, r, withData("Search for patient using name or SSN", ""), NewScanContext(3))
	require.Len(t, findings, 1)
	assert.Equal(t, models.FieldData, findings[0].FieldName)
	assert.Equal(t, models.SeverityError, findings[0].Severity)
}

func TestGenericExpectedResultRule(t *testing.T) {
	r := NewGenericExpectedResultRule([]string{"ok", "as expected"}, 4, nil)

	tests := []struct {
		value   string
		message string
	}{
		{value: "OK", message: `expected result is too generic ("OK")`},
		{value: " As   Expected ", message: `expected result is too generic ("As   Expected")`},
		{value: "yes", message: `expected result is too short ("yes")`},
		{value: "Chart opens."},
		{value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			findings := check(t, r, caseRow(1, "T1", "1", "a", tt.value), NewScanContext(4))
			if tt.message == "" {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, tt.message, findings[0].Message)
			assert.Equal(t, models.SeverityWarning, findings[0].Severity)
		})
	}
}

func TestExpectedResultPunctuationRule(t *testing.T) {
	r := NewExpectedResultPunctuationRule(nil)
	sc := NewScanContext(4)

	assert.Empty(t, check(t, r, caseRow(1, "T1", "1", "a", "Chart opens. "), sc))
	assert.Empty(t, check(t, r, caseRow(1, "T1", "1", "a", ""), sc))
	assert.Empty(t, check(t, r, caseRow(1, "", "", "", ""), sc))

	findings := check(t, r, caseRow(1, "T1", "1", "a", "Chart opens"), sc)
	require.Len(t, findings, 1)
	assert.Equal(t, "expected_result_punctuation", findings[0].RuleID)
}

func TestAppliesToIsPure(t *testing.T) {
	rec := caseRow(1, "T1", "1", "a", "b")
	sc := NewScanContext(4)
	for _, r := range []Rule{
		NewRowStructureRule(),
		NewEmptyRowRule(nil),
		NewRequiredFieldRule([]string{models.FieldTestID}, nil),
		NewStepNumberingRule(true),
		NewExpectedResultFormatRule(nil),
		NewDataRequiredRule([]string{"a"}, nil),
		NewGenericExpectedResultRule(nil, 4, nil),
		NewExpectedResultPunctuationRule(nil),
		NewCoreStepsRule(loginCoreSteps(), nil),
	} {
		before := r.AppliesTo(rec)
		assert.Equal(t, before, r.AppliesTo(rec), r.ID())
		_, seen := sc.LastStep("T1")
		assert.False(t, seen, r.ID())
	}
	assert.Equal(t, "T1", rec.Fields[models.FieldTestID])
}
