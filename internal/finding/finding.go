// Package finding defines the result model shared by every checker and
// renderer: one Finding per reported fact, either a concrete violation or a
// single confirmation that a checker ran clean.
package finding

import "fmt"

// Severity is the fixed four-level scale attached to failing findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all levels in display order, most severe first.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns the ordinal position for sorting; critical ranks first.
// Unknown values sort after low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 4
}

// ParseSeverity validates a severity string from configuration.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity %q (must be critical, high, medium, or low)", s)
}

// Location pins a finding to a line inside the scanned tree. File is always
// root-relative with forward slashes; Line is 1-based.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Code string `json:"code,omitempty"`
}

// Finding is one reported fact about the scanned tree.
//
// A checker that finds nothing emits exactly one Finding with Passed=true so
// "ran clean" is distinguishable from "did not run". Location is nil when no
// specific line applies (passing results, file-granularity reports).
type Finding struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Severity       Severity  `json:"severity"`
	Passed         bool      `json:"passed"`
	Details        string    `json:"details,omitempty"`
	Location       *Location `json:"location,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// Pass builds the single synthetic all-clear result for a checker.
func Pass(id, name, details string) Finding {
	return Finding{
		ID:       id,
		Name:     name,
		Severity: SeverityLow,
		Passed:   true,
		Details:  details,
	}
}

// WithSeverity returns a copy of f carrying the new severity and a note in
// Details recording the change. f itself is never mutated.
func (f Finding) WithSeverity(s Severity) Finding {
	out := f
	if f.Severity != s {
		out.Details = fmt.Sprintf("%s (severity overridden: %s -> %s)", f.Details, f.Severity, s)
	}
	out.Severity = s
	return out
}
