// Package rules holds the validation rules applied to every test-case row
// and the registry that builds them from configuration.
package rules

import (
	"strings"

	"github.com/aleister1102/tcscanner/internal/models"
)

// Rule is one validation check.
// AppliesTo must have no side effects. Check may update the ScanContext
// but never the record.
type Rule interface {
	ID() string
	AppliesTo(rec models.Record) bool
	Check(rec models.Record, sc *ScanContext) ([]models.Finding, error)
}

// Finisher is implemented by rules that still have findings to report once
// every row has been checked.
type Finisher interface {
	Finish(sc *ScanContext) ([]models.Finding, error)
}

// ColumnRequirer is implemented by rules that need particular logical columns
// in the header.
type ColumnRequirer interface {
	RequiredColumns() []string
}

// ScanContext is the cross-row state of a single scan
type ScanContext struct {
	headerWidth int
	lastStep    map[string]int
	windows     map[string]*rowWindow
	windowOrder []string
}

// rowWindow holds the leading rows of one test case until it is evaluated
type rowWindow struct {
	rows   []models.Record
	closed bool
}

// NewScanContext creates an empty context for a table whose header has headerWidth cells
func NewScanContext(headerWidth int) *ScanContext {
	return &ScanContext{
		headerWidth: headerWidth,
		lastStep:    make(map[string]int),
		windows:     make(map[string]*rowWindow),
	}
}

// HeaderWidth returns the number of header cells, 0 when unknown
func (sc *ScanContext) HeaderWidth() int {
	return sc.headerWidth
}

// LastStep returns the last accepted step number for testID
func (sc *ScanContext) LastStep(testID string) (int, bool) {
	step, ok := sc.lastStep[testID]
	return step, ok
}

// SetLastStep records step as the baseline for testID
func (sc *ScanContext) SetLastStep(testID string, step int) {
	sc.lastStep[testID] = step
}

// window returns the row window of testID, creating it on first use
func (sc *ScanContext) window(testID string) *rowWindow {
	w, ok := sc.windows[testID]
	if !ok {
		w = &rowWindow{}
		sc.windows[testID] = w
		sc.windowOrder = append(sc.windowOrder, testID)
	}
	return w
}

// openWindows returns the windows not yet evaluated, in first-seen order
func (sc *ScanContext) openWindows() []*rowWindow {
	var open []*rowWindow
	for _, id := range sc.windowOrder {
		if w := sc.windows[id]; !w.closed {
			open = append(open, w)
		}
	}
	return open
}

// emptyMatcher decides whether a cell counts as empty.
// Blank cells always do; configured placeholders such as "n/a" may too.
type emptyMatcher struct {
	values map[string]struct{}
}

func newEmptyMatcher(values []string) emptyMatcher {
	m := emptyMatcher{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		m.values[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return m
}

func (m emptyMatcher) isEmpty(v string) bool {
	t := strings.ToLower(strings.TrimSpace(v))
	if t == "" {
		return true
	}
	_, ok := m.values[t]
	return ok
}

func (m emptyMatcher) isBlankRow(rec models.Record) bool {
	return rec.IsBlank(m.isEmpty)
}

// collapseSpaces trims s and collapses runs of whitespace to one space
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeText lower-cases and collapses runs of whitespace
func normalizeText(s string) string {
	return strings.ToLower(collapseSpaces(s))
}
