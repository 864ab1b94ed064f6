package checker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var cookieWriteRe = regexp.MustCompile(`(?i)(res\.cookie\s*\(|cookies\s*\(\s*\)\s*\.\s*set\s*\(|Set-Cookie|document\.cookie\s*=)`)

type cookies struct{ meta }

// NewCookies flags cookie writes that omit the Secure, HttpOnly, or
// SameSite attributes. Only the matched line is inspected; options spread
// over multiple lines are accepted noise.
func NewCookies() Checker {
	return &cookies{meta{
		id:          "cookies",
		name:        "Cookie Security Flags",
		description: "Detects cookies set without Secure, HttpOnly, or SameSite attributes.",
	}}
}

func (c *cookies) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if !cookieWriteRe.MatchString(line) || looksLikeExampleFile(file) {
			return
		}
		lower := strings.ToLower(line)

		var missing []string
		if !strings.Contains(lower, "secure") {
			missing = append(missing, "Secure")
		}
		if !strings.Contains(lower, "httponly") {
			missing = append(missing, "HttpOnly")
		}
		if !strings.Contains(lower, "samesite") {
			missing = append(missing, "SameSite")
		}
		if len(missing) == 0 {
			return
		}
		// document.cookie can never be HttpOnly; only report the others.
		if strings.Contains(lower, "document.cookie") {
			filtered := missing[:0]
			for _, flag := range missing {
				if flag != "HttpOnly" {
					filtered = append(filtered, flag)
				}
			}
			missing = filtered
			if len(missing) == 0 {
				return
			}
		}

		fails = append(fails, finding.Finding{
			ID:          "cookies-insecure",
			Name:        c.name,
			Description: c.description,
			Severity:    finding.SeverityMedium,
			Details:     fmt.Sprintf("Cookie set in %s:%d without %s.", file, lineNo, strings.Join(missing, ", ")),
			Location:    loc(file, lineNo, line),
			Recommendation: "Set Secure, HttpOnly, and SameSite=Lax (or Strict) on session cookies; without " +
				"them the cookie is exposed to interception and script access.",
		})
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No insecure cookie writes detected."), nil
	}
	return fails, nil
}
