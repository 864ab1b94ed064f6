package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

var severityColors = map[finding.Severity]*color.Color{
	finding.SeverityCritical: color.New(color.FgRed, color.Bold),
	finding.SeverityHigh:     color.New(color.FgRed),
	finding.SeverityMedium:   color.New(color.FgYellow),
	finding.SeverityLow:      color.New(color.FgCyan),
}

var (
	colorPass = color.New(color.FgGreen).SprintFunc()
	colorDim  = color.New(color.Faint).SprintFunc()
)

// RenderConsole writes the interactive terminal summary: header, tally,
// findings grouped by severity, and optionally the passing checks.
func RenderConsole(w io.Writer, result *scan.Result, opts Options) {
	if opts.NoColor {
		color.NoColor = true
	}
	g := group(result.Findings)

	fmt.Fprintf(w, "\nvibe-check: %s\n", result.Summary.Root)
	fmt.Fprintf(w, "%d checks, %s, %s\n",
		result.Summary.Total,
		colorPass(fmt.Sprintf("%d passed", result.Summary.Passed)),
		failTally(result.Summary.Failed))

	for _, sev := range finding.Severities {
		findings := g.failed[sev]
		if len(findings) == 0 {
			continue
		}
		c := severityColors[sev]
		fmt.Fprintf(w, "\n%s\n", c.Sprintf("%s (%d)", strings.ToUpper(severityLabel(sev)), len(findings)))
		for _, f := range findings {
			writeConsoleFinding(w, f)
		}
	}

	if opts.ShowPassed && len(g.passed) > 0 {
		fmt.Fprintf(w, "\n%s\n", colorPass(fmt.Sprintf("PASSED (%d)", len(g.passed))))
		for _, f := range g.passed {
			fmt.Fprintf(w, "  %s %s %s\n", colorPass("✓"), f.Name, colorDim("- "+f.Details))
		}
	}

	if result.Summary.Failed == 0 {
		fmt.Fprintf(w, "\n%s\n", colorPass("No issues found."))
	}
	fmt.Fprintln(w)
}

func writeConsoleFinding(w io.Writer, f finding.Finding) {
	fmt.Fprintf(w, "  ✗ %s %s\n", f.Name, colorDim("["+f.ID+"]"))
	if f.Location != nil {
		fmt.Fprintf(w, "    %s\n", colorDim(fmt.Sprintf("%s:%d", f.Location.File, f.Location.Line)))
		if f.Location.Code != "" {
			fmt.Fprintf(w, "    %s\n", colorDim(f.Location.Code))
		}
	}
	if f.Details != "" {
		fmt.Fprintf(w, "    %s\n", f.Details)
	}
	if f.Recommendation != "" {
		fmt.Fprintf(w, "    Fix: %s\n", f.Recommendation)
	}
}

func failTally(failed int) string {
	s := fmt.Sprintf("%d issues", failed)
	if failed == 0 {
		return colorPass(s)
	}
	return color.New(color.FgRed).Sprint(s)
}
