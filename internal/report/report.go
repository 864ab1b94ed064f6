// Package report renders a completed scan into its output
// representations: a colored console summary plus text, json, markdown,
// html, and pdf artifacts. Rendering never mutates the findings it is
// given.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

// Supported artifact formats. Console output is separate: it is always
// written to the terminal and is not a file format.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// ErrUnsupportedFormat signals a format name outside the supported set.
// Callers must treat it as an explicit failure, never a silent fallback.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Options adjusts rendering without changing content semantics.
type Options struct {
	// ShowPassed includes the passing findings section.
	ShowPassed bool
	// NoColor disables ANSI color in console output.
	NoColor bool
}

// Render produces the report artifact for one format.
func Render(result *scan.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(result, opts), nil
	case FormatJSON:
		return renderJSON(result)
	case FormatMarkdown:
		return renderMarkdown(result, opts), nil
	case FormatHTML:
		return renderHTML(result, opts)
	case FormatPDF:
		return renderPDF(result, opts)
	}
	return nil, fmt.Errorf("%w: %q (supported: text, json, markdown, html, pdf)", ErrUnsupportedFormat, format)
}

// Extension returns the artifact file extension for a supported format.
func Extension(format string) string {
	if format == FormatMarkdown {
		return "md"
	}
	return format
}

// DefaultFilename derives the artifact name used when the caller supplies
// no output path.
func DefaultFilename(format string) string {
	return fmt.Sprintf("vibe-check-report-%d.%s", time.Now().Unix(), Extension(format))
}

// severityGroups splits findings into failed-by-severity buckets plus the
// passed list, preserving input order inside each bucket. Display order of
// the buckets is fixed: critical, high, medium, low.
type severityGroups struct {
	failed map[finding.Severity][]finding.Finding
	passed []finding.Finding
}

func group(findings []finding.Finding) severityGroups {
	g := severityGroups{failed: make(map[finding.Severity][]finding.Finding)}
	for _, f := range findings {
		if f.Passed {
			g.passed = append(g.passed, f)
			continue
		}
		g.failed[f.Severity] = append(g.failed[f.Severity], f)
	}
	return g
}

func severityLabel(s finding.Severity) string {
	switch s {
	case finding.SeverityCritical:
		return "Critical"
	case finding.SeverityHigh:
		return "High"
	case finding.SeverityMedium:
		return "Medium"
	case finding.SeverityLow:
		return "Low"
	}
	return string(s)
}
