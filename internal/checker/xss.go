package checker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	dangerousHTMLRe = regexp.MustCompile(`dangerouslySetInnerHTML\s*=\s*\{\{?\s*__html\s*:\s*(.+)`)
	innerHTMLRe     = regexp.MustCompile(`\.(innerHTML|outerHTML)\s*[+]?=\s*(.+)`)
	documentWriteRe = regexp.MustCompile(`document\.write(?:ln)?\s*\(`)
	vHTMLRe         = regexp.MustCompile(`v-html\s*=`)
)

// literalRHS reports whether an assigned expression starts with a string
// literal; constant markup is not an injection sink.
func literalRHS(expr string) bool {
	expr = strings.TrimSpace(expr)
	return strings.HasPrefix(expr, `"`) || strings.HasPrefix(expr, "'") ||
		(strings.HasPrefix(expr, "`") && !strings.Contains(expr, "${"))
}

type xss struct{ meta }

// NewXSS flags HTML-injection sinks fed with dynamic input:
// dangerouslySetInnerHTML, innerHTML assignment, document.write, v-html.
func NewXSS() Checker {
	return &xss{meta{
		id:          "xss",
		name:        "XSS-Prone Sinks",
		description: "Detects DOM sinks that render dynamic input as HTML without sanitization.",
	}}
}

func (c *xss) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	report := func(file string, lineNo int, line, what string) {
		fails = append(fails, finding.Finding{
			ID:          "xss-dangerous-sink",
			Name:        c.name,
			Description: c.description,
			Severity:    finding.SeverityHigh,
			Details:     fmt.Sprintf("%s in %s:%d renders dynamic content as HTML.", what, file, lineNo),
			Location:    loc(file, lineNo, line),
			Recommendation: "Sanitize the value (e.g. DOMPurify) before rendering it as HTML, or render it " +
				"as text content instead.",
		})
	}

	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if looksLikeExampleFile(file) {
			return
		}
		if m := dangerousHTMLRe.FindStringSubmatch(line); m != nil && !literalRHS(m[1]) {
			report(file, lineNo, line, "dangerouslySetInnerHTML")
			return
		}
		if m := innerHTMLRe.FindStringSubmatch(line); m != nil && !literalRHS(m[2]) {
			report(file, lineNo, line, "innerHTML assignment")
			return
		}
		if documentWriteRe.MatchString(line) {
			report(file, lineNo, line, "document.write")
			return
		}
		if vHTMLRe.MatchString(line) {
			report(file, lineNo, line, "v-html binding")
		}
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No XSS-prone sinks with dynamic input detected."), nil
	}
	return fails, nil
}
