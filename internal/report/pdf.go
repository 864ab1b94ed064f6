package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"github.com/joshdayorg/vibe-check/internal/scan"
	"github.com/jung-kurt/gofpdf"
)

// renderPDF lays out the report as a printable A4 document.
func renderPDF(result *scan.Result, opts Options) ([]byte, error) {
	g := group(result.Findings)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "vibe-check Security Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Root: %s", result.Summary.Root), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Checks: %d | Passed: %d | Issues: %d",
		result.Summary.Total, result.Summary.Passed, result.Summary.Failed), "", 1, "", false, 0, "")
	pdf.Ln(4)

	for _, sev := range finding.Severities {
		findings := g.failed[sev]
		if len(findings) == 0 {
			continue
		}

		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s (%d)", strings.ToUpper(severityLabel(sev)), len(findings)), "", 1, "", true, 0, "")
		pdf.Ln(1)

		for _, f := range findings {
			if pdf.GetY() > 255 {
				pdf.AddPage()
			}
			pdf.SetFont("Arial", "B", 10)
			pdf.MultiCell(0, 5, fmt.Sprintf("%s  [%s]", f.Name, f.ID), "", "", false)
			pdf.SetFont("Arial", "", 9)
			if f.Location != nil {
				pdf.MultiCell(0, 4, fmt.Sprintf("%s:%d", f.Location.File, f.Location.Line), "", "", false)
				if f.Location.Code != "" {
					pdf.SetFont("Courier", "", 8)
					pdf.MultiCell(0, 4, f.Location.Code, "", "", false)
					pdf.SetFont("Arial", "", 9)
				}
			}
			if f.Details != "" {
				pdf.MultiCell(0, 4, f.Details, "", "", false)
			}
			if f.Recommendation != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.MultiCell(0, 4, "Fix: "+f.Recommendation, "", "", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	if opts.ShowPassed && len(g.passed) > 0 {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Passed (%d)", len(g.passed)), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, f := range g.passed {
			if pdf.GetY() > 270 {
				pdf.AddPage()
			}
			pdf.MultiCell(0, 4, fmt.Sprintf("+ %s - %s", f.Name, f.Details), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
