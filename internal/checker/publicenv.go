package checker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var defaultPublicPrefixes = []string{
	"NEXT_PUBLIC_",
	"VITE_",
	"REACT_APP_",
	"EXPO_PUBLIC_",
	"PUBLIC_",
}

var (
	envAssignRe      = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	sensitiveNameRe  = regexp.MustCompile(`(?i)(key|secret|token|password|passwd|pwd|credential|private)`)
	publicSafeNameRe = regexp.MustCompile(`(?i)(publishable|public[_-]?key$|anon[_-]?key$|site[_-]?key)`)
)

type publicEnv struct{ meta }

// NewPublicEnv flags env-file variables that are both bundled into the
// client (public-exposure prefix) and named like a secret. The prefix list
// is configurable via the "prefixes" checker option.
func NewPublicEnv() Checker {
	return &publicEnv{meta{
		id:          "public-env",
		name:        "Public Environment Variable Exposure",
		description: "Detects sensitive values assigned to client-exposed environment variables in .env files.",
	}}
}

func (c *publicEnv) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	prefixes := stringSliceSetting(opts.Settings, "prefixes", defaultPublicPrefixes)

	var fails []finding.Finding
	_, err := scanLines(ctx, opts, []string{".env*"}, func(file string, lineNo int, line string) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			return
		}
		m := envAssignRe.FindStringSubmatch(line)
		if m == nil {
			return
		}
		name := m[1]

		var prefix string
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				prefix = p
				break
			}
		}
		if prefix == "" {
			return
		}
		// Keys that are public by design (publishable/anon/site keys) are
		// expected under these prefixes.
		if !sensitiveNameRe.MatchString(name) || publicSafeNameRe.MatchString(name) {
			return
		}

		fails = append(fails, finding.Finding{
			ID:          "public-env-exposed",
			Name:        c.name,
			Description: c.description,
			Severity:    finding.SeverityHigh,
			Details: fmt.Sprintf("%s carries the client-exposure prefix %q but is named like a secret; "+
				"its value ships in the browser bundle.", name, prefix),
			Location: loc(file, lineNo, name+"=..."),
			Recommendation: "Drop the public prefix so the variable stays server-side, or replace the value " +
				"with a key that is safe to expose.",
		})
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No sensitive values exposed through public environment variable prefixes."), nil
	}
	return fails, nil
}
