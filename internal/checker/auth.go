package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	hardcodedCredRe = regexp.MustCompile(`(?i)(password|passwd|pwd|secret)\s*===?\s*['"][^'"]+['"]`)
	// Authorization decisions read from client-writable storage.
	clientAuthGateRe = regexp.MustCompile(`(?i)(localStorage|sessionStorage)\s*(?:\.\s*getItem\s*\(\s*|\[\s*)['"` + "`" + `][^'"` + "`" + `]*(isadmin|role|admin|loggedin|authenticated)`)
	disabledAuthRe   = regexp.MustCompile(`(?i)((auth|authenticate|requireAuth|verifyToken|authRequired)\s*:\s*false|^\s*//.*\b(requireAuth|authMiddleware|authenticate|verifyToken|withAuth)\s*\()`)
)

type auth struct{ meta }

// NewAuth flags authentication anti-patterns: credentials compared against
// string literals, authorization gates driven by client-writable storage,
// and auth middleware that has been switched off or commented out.
func NewAuth() Checker {
	return &auth{meta{
		id:          "auth",
		name:        "Authentication Anti-Patterns",
		description: "Detects hardcoded credentials, client-side-only authorization, and disabled auth middleware.",
	}}
}

func (c *auth) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if looksLikeExampleFile(file) || looksLikePlaceholder(line) {
			return
		}
		if hardcodedCredRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "auth-hardcoded-credentials",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityHigh,
				Details:     fmt.Sprintf("Credential compared against a string literal in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Verify credentials against a hashed value from your user store; literals in " +
					"source are visible to anyone with repository access.",
			})
			return
		}
		if clientAuthGateRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "auth-client-side-only",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("Authorization decision in %s:%d reads from client-writable storage.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Enforce authorization on the server; client-side gates are cosmetic and " +
					"trivially bypassed from the devtools console.",
			})
			return
		}
		if disabledAuthRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "auth-disabled-middleware",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityHigh,
				Details:     fmt.Sprintf("Auth middleware appears disabled or commented out in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Re-enable the auth middleware, or delete the dead call so the gap is visible " +
					"in review.",
			})
		}
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No authentication anti-patterns detected."), nil
	}
	return fails, nil
}
