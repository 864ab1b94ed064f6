package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

// renderMarkdown emits the report as headed sections with fenced code
// snippets, suitable for pasting into an issue or PR.
func renderMarkdown(result *scan.Result, opts Options) []byte {
	g := group(result.Findings)
	var b strings.Builder

	b.WriteString("# vibe-check Security Report\n\n")
	fmt.Fprintf(&b, "Scanned `%s` on %s.\n\n", result.Summary.Root, time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**%d** checks · **%d** passed · **%d** issues\n", result.Summary.Total, result.Summary.Passed, result.Summary.Failed)

	for _, sev := range finding.Severities {
		findings := g.failed[sev]
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s (%d)\n", severityLabel(sev), len(findings))
		for _, f := range findings {
			fmt.Fprintf(&b, "\n### %s\n\n", f.Name)
			fmt.Fprintf(&b, "`%s`\n\n", f.ID)
			if f.Location != nil {
				fmt.Fprintf(&b, "`%s:%d`\n\n", f.Location.File, f.Location.Line)
			}
			if f.Details != "" {
				b.WriteString(f.Details + "\n\n")
			}
			if f.Location != nil && f.Location.Code != "" {
				fmt.Fprintf(&b, "```\n%s\n```\n\n", f.Location.Code)
			}
			if f.Recommendation != "" {
				fmt.Fprintf(&b, "**Recommendation:** %s\n", f.Recommendation)
			}
		}
	}

	if opts.ShowPassed && len(g.passed) > 0 {
		fmt.Fprintf(&b, "\n## Passed (%d)\n\n", len(g.passed))
		for _, f := range g.passed {
			fmt.Fprintf(&b, "- ✅ **%s**: %s\n", f.Name, f.Details)
		}
	}

	if result.Summary.Failed == 0 {
		b.WriteString("\nNo issues found. 🎉\n")
	}

	b.WriteString("\n---\n\n*Generated by [vibe-check](https://github.com/joshdayorg/vibe-check).*\n")
	return []byte(b.String())
}
