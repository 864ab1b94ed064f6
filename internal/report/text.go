package report

import (
	"fmt"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

const sectionRule = "----------------------------------------"

// renderText produces the colorless file-friendly rendering: the console
// grouping framed with dashed section headers.
func renderText(result *scan.Result, opts Options) []byte {
	g := group(result.Findings)
	var b strings.Builder

	b.WriteString(sectionRule + "\n")
	b.WriteString("vibe-check scan report\n")
	fmt.Fprintf(&b, "Root: %s\n", result.Summary.Root)
	fmt.Fprintf(&b, "Checks: %d total, %d passed, %d issues\n", result.Summary.Total, result.Summary.Passed, result.Summary.Failed)
	b.WriteString(sectionRule + "\n")

	for _, sev := range finding.Severities {
		findings := g.failed[sev]
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d)\n%s\n", strings.ToUpper(severityLabel(sev)), len(findings), sectionRule)
		for _, f := range findings {
			writeTextFinding(&b, f)
		}
	}

	if opts.ShowPassed && len(g.passed) > 0 {
		fmt.Fprintf(&b, "\nPASSED (%d)\n%s\n", len(g.passed), sectionRule)
		for _, f := range g.passed {
			fmt.Fprintf(&b, "\n[PASS] %s\n  %s\n", f.Name, f.Details)
		}
	}

	if result.Summary.Failed == 0 {
		b.WriteString("\nNo issues found.\n")
	}
	return []byte(b.String())
}

func writeTextFinding(b *strings.Builder, f finding.Finding) {
	fmt.Fprintf(b, "\n[%s] %s\n", f.ID, f.Name)
	if f.Location != nil {
		fmt.Fprintf(b, "  File: %s:%d\n", f.Location.File, f.Location.Line)
		if f.Location.Code != "" {
			fmt.Fprintf(b, "  Code: %s\n", f.Location.Code)
		}
	}
	if f.Details != "" {
		fmt.Fprintf(b, "  %s\n", f.Details)
	}
	if f.Recommendation != "" {
		fmt.Fprintf(b, "  Fix: %s\n", f.Recommendation)
	}
}
