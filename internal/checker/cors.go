package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/findfiles"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	corsWildcardRe = regexp.MustCompile(`(?i)(Access-Control-Allow-Origin['"]?\s*[,:=]\s*['"]\*|\borigin\s*:\s*(?:['"]\*['"]|true\b))`)
	// cors() with no arguments allows every origin.
	corsBareMiddlewareRe = regexp.MustCompile(`\buse\s*\(\s*cors\s*\(\s*\)\s*\)`)
	corsReflectionRe     = regexp.MustCompile(`(?i)(Access-Control-Allow-Origin['"]?\s*[,:=].{0,60}(req(uest)?\.headers)|origin\s*:\s*\(?\s*req\b)`)
	corsCredentialsRe    = regexp.MustCompile(`(?i)(credentials\s*:\s*true|Access-Control-Allow-Credentials['"]?\s*[,:=]\s*['"]?true)`)
)

type cors struct{ meta }

// NewCORS flags CORS misconfiguration: wildcard origins, bare permissive
// middleware, and the worst case, reflecting the request origin while
// credentials are enabled, which defeats the same-origin policy entirely.
func NewCORS() Checker {
	return &cors{meta{
		id:          "cors",
		name:        "CORS Configuration",
		description: "Detects wildcard or origin-reflecting CORS configuration, especially combined with credentials.",
	}}
}

func (c *cors) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	files, err := findfiles.Find(opts.Root, sourceGlobs, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	var fails []finding.Finding
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, ok := findfiles.ReadLines(opts.Root, file)
		if !ok {
			continue
		}

		var reflectionLine int
		var reflectionCode string
		hasCredentials := false

		for i, line := range lines {
			lineNo := i + 1
			if corsWildcardRe.MatchString(line) {
				fails = append(fails, finding.Finding{
					ID:             "cors-wildcard-origin",
					Name:           c.name,
					Description:    c.description,
					Severity:       finding.SeverityHigh,
					Details:        fmt.Sprintf("Wildcard CORS origin in %s:%d allows any site to call this API.", file, lineNo),
					Location:       loc(file, lineNo, line),
					Recommendation: "Replace the wildcard with an explicit allow-list of trusted origins.",
				})
			}
			if corsBareMiddlewareRe.MatchString(line) {
				fails = append(fails, finding.Finding{
					ID:             "cors-permissive-middleware",
					Name:           c.name,
					Description:    c.description,
					Severity:       finding.SeverityHigh,
					Details:        fmt.Sprintf("cors() middleware in %s:%d is mounted without options, defaulting to allow-all.", file, lineNo),
					Location:       loc(file, lineNo, line),
					Recommendation: "Pass an origin allow-list to the cors middleware instead of the permissive default.",
				})
			}
			if reflectionLine == 0 && corsReflectionRe.MatchString(line) {
				reflectionLine = lineNo
				reflectionCode = line
			}
			if corsCredentialsRe.MatchString(line) {
				hasCredentials = true
			}
		}

		if reflectionLine > 0 && hasCredentials {
			fails = append(fails, finding.Finding{
				ID:          "cors-reflected-credentials",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityCritical,
				Details: fmt.Sprintf("%s reflects the request origin into Access-Control-Allow-Origin while "+
					"credentials are enabled; any site can make authenticated requests as the visitor.", file),
				Location: loc(file, reflectionLine, reflectionCode),
				Recommendation: "Validate the origin against an allow-list before echoing it, or disable " +
					"credentials for cross-origin requests.",
			})
		}
	}

	if len(fails) == 0 {
		return c.pass("No CORS misconfiguration detected."), nil
	}
	return fails, nil
}
