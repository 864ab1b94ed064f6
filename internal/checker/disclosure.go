package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	stackTraceResponseRe = regexp.MustCompile(`(?i)(res\.(json|send|status)|NextResponse\.json|response\.json|reply\.send)\s*\(.*\.stack\b|\.stack\b.*(res\.(json|send)|NextResponse\.json)`)
	errorPassthroughRe   = regexp.MustCompile(`(?i)(json|send)\s*\(\s*\{[^}]*\berror\s*:\s*(err(or)?\.message|String\s*\(\s*err)`)
	poweredByRe          = regexp.MustCompile(`(?i)poweredByHeader\s*:\s*true|x-powered-by['"]?\s*[,:]\s*['"][^'"]+['"]`)
)

type infoDisclosure struct{ meta }

// NewInfoDisclosure flags server responses that leak internals: stack
// traces in response bodies, raw error messages passed through to clients,
// and advertised server technology headers.
func NewInfoDisclosure() Checker {
	return &infoDisclosure{meta{
		id:          "info-disclosure",
		name:        "Information Disclosure",
		description: "Detects stack traces, raw error messages, and technology headers exposed to clients.",
	}}
}

func (c *infoDisclosure) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if looksLikeExampleFile(file) {
			return
		}
		if stackTraceResponseRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "info-disclosure-stack-trace",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("Stack trace included in a response in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Log the stack server-side and return a generic error message; traces reveal " +
					"file paths, dependencies, and logic to attackers.",
			})
			return
		}
		if errorPassthroughRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "info-disclosure-error-passthrough",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("Raw error message passed through to the client in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Map internal errors to stable client-facing messages; raw messages can leak " +
					"queries, hostnames, and library internals.",
			})
			return
		}
		if poweredByRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "info-disclosure-powered-by",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("Technology-advertising header configured in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Disable the X-Powered-By header; it narrows an attacker's search for known " +
					"exploits against your stack.",
			})
		}
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No information disclosure patterns detected."), nil
	}
	return fails, nil
}
