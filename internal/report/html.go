package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

//go:embed templates/report.html.tmpl
var htmlTemplateFS embed.FS

var htmlReportTemplate = template.Must(
	template.New("report.html.tmpl").Funcs(template.FuncMap{
		"copyText": copyText,
	}).ParseFS(htmlTemplateFS, "templates/report.html.tmpl"),
)

type htmlSection struct {
	Severity string
	Label    string
	Findings []finding.Finding
}

type htmlData struct {
	Root        string
	GeneratedAt string
	Total       int
	Passed      int
	Failed      int
	Counts      map[string]int
	Sections    []htmlSection
	PassedList  []finding.Finding
	ShowPassed  bool
}

// renderHTML produces the self-contained interactive page. All finding
// text flows through html/template's contextual escaping, so repository
// content can never break out of the markup.
func renderHTML(result *scan.Result, opts Options) ([]byte, error) {
	g := group(result.Findings)

	data := htmlData{
		Root:        result.Summary.Root,
		GeneratedAt: time.Now().Format(time.RFC1123),
		Total:       result.Summary.Total,
		Passed:      result.Summary.Passed,
		Failed:      result.Summary.Failed,
		Counts:      map[string]int{},
		ShowPassed:  opts.ShowPassed,
		PassedList:  g.passed,
	}
	for _, sev := range finding.Severities {
		data.Counts[string(sev)] = len(g.failed[sev])
		if len(g.failed[sev]) > 0 {
			data.Sections = append(data.Sections, htmlSection{
				Severity: string(sev),
				Label:    severityLabel(sev),
				Findings: g.failed[sev],
			})
		}
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute html template: %w", err)
	}
	return buf.Bytes(), nil
}

// copyText is the plain-text form of one finding placed behind each card's
// copy button.
func copyText(f finding.Finding) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s (%s)\n", f.Severity, f.Name, f.ID)
	if f.Location != nil {
		fmt.Fprintf(&b, "File: %s:%d\n", f.Location.File, f.Location.Line)
		if f.Location.Code != "" {
			fmt.Fprintf(&b, "Code: %s\n", f.Location.Code)
		}
	}
	if f.Details != "" {
		fmt.Fprintf(&b, "%s\n", f.Details)
	}
	if f.Recommendation != "" {
		fmt.Fprintf(&b, "Fix: %s\n", f.Recommendation)
	}
	return b.String()
}
