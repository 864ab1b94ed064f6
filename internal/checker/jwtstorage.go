package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var browserStorageTokenRe = regexp.MustCompile(`(?i)(localStorage|sessionStorage)\s*(?:\.\s*setItem\s*\(\s*|\[\s*)['"` + "`" + `][^'"` + "`" + `]*(token|jwt|auth|session|credential|access|refresh)`)

type jwtStorage struct{ meta }

// NewJWTStorage flags auth tokens written to localStorage/sessionStorage,
// where any XSS can read them. At most one location is reported per file.
func NewJWTStorage() Checker {
	return &jwtStorage{meta{
		id:          "jwt-storage",
		name:        "Token in Browser Storage",
		description: "Detects authentication tokens stored in localStorage or sessionStorage, readable by any injected script.",
	}}
}

func (c *jwtStorage) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	flagged := map[string]bool{}

	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if flagged[file] || looksLikeExampleFile(file) {
			return
		}
		if !browserStorageTokenRe.MatchString(line) {
			return
		}
		flagged[file] = true
		fails = append(fails, finding.Finding{
			ID:          "jwt-storage-browser",
			Name:        c.name,
			Description: c.description,
			Severity:    finding.SeverityHigh,
			Details:     fmt.Sprintf("Auth token written to browser storage in %s:%d.", file, lineNo),
			Location:    loc(file, lineNo, line),
			Recommendation: "Keep session tokens in HttpOnly cookies set by the server; browser storage is " +
				"readable by any script that runs on the page.",
		})
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No auth tokens found in browser storage APIs."), nil
	}
	return fails, nil
}
