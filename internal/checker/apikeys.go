package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

type apiKeyRule struct {
	provider string
	name     string
	pattern  *regexp.Regexp
}

// Provider-shaped token rules. Order matters where prefixes overlap:
// Anthropic keys start with "sk-ant-" and must be tried before the broader
// OpenAI shape.
var apiKeyRules = []apiKeyRule{
	{"anthropic", "Anthropic API Key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{24,}`)},
	{"openai", "OpenAI API Key", regexp.MustCompile(`sk-(?:proj-)?[A-Za-z0-9]{20,}`)},
	{"aws", "AWS Access Key ID", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"google", "Google API Key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"stripe", "Stripe Secret Key", regexp.MustCompile(`[sr]k_live_[A-Za-z0-9]{20,}`)},
	{"github", "GitHub Token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)},
	{"slack", "Slack Token", regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`)},
	{"supabase-service-role", "Supabase Service Role Key", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{10,}`)},
	{"private-key", "Private Key Material", regexp.MustCompile(`-----BEGIN (?:RSA|OPENSSH|EC|DSA|PGP)? ?PRIVATE KEY`)},
}

// Generic fallback: a long opaque value assigned to a secret-ish name.
var genericKeyRe = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)\s*[:=]\s*['"][A-Za-z0-9_\-/+]{24,}['"]`)

type apiKeys struct{ meta }

// NewAPIKeys detects hardcoded provider credentials in source and config
// files. Matches in files or lines marked as examples are dropped.
func NewAPIKeys() Checker {
	return &apiKeys{meta{
		id:          "api-keys",
		name:        "API Key Exposure",
		description: "Detects hardcoded API keys, tokens, and private key material committed to the repository.",
	}}
}

func (c *apiKeys) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	globs := append(append([]string(nil), sourceGlobs...),
		"**/*.{json,yaml,yml,toml}",
		"**/*.{py,rb,go,java,php}",
		".env*",
	)
	flagServiceRole := boolSetting(opts.Settings, "flagServiceRoleKeys", true)

	var fails []finding.Finding
	_, err := scanLines(ctx, opts, globs, func(file string, lineNo int, line string) {
		if looksLikeExampleFile(file) || looksLikePlaceholder(line) {
			return
		}

		matchedProvider := false
		for _, rule := range apiKeyRules {
			if rule.provider == "supabase-service-role" && !flagServiceRole {
				continue
			}
			m := rule.pattern.FindStringIndex(line)
			if m == nil {
				continue
			}
			matchedProvider = true
			fails = append(fails, finding.Finding{
				ID:          "api-key-" + rule.provider,
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityCritical,
				Details:     fmt.Sprintf("%s found in %s:%d (column %d)", rule.name, file, lineNo, m[0]+1),
				Location:    loc(file, lineNo, line),
				Recommendation: "Remove the credential from source control, rotate it with the provider, " +
					"and load it from environment variables or a secret manager instead.",
			})
			break
		}

		if !matchedProvider {
			if m := genericKeyRe.FindStringIndex(line); m != nil {
				fails = append(fails, finding.Finding{
					ID:          "api-key-generic",
					Name:        c.name,
					Description: c.description,
					Severity:    finding.SeverityCritical,
					Details:     fmt.Sprintf("Secret-like assignment found in %s:%d (column %d)", file, lineNo, m[0]+1),
					Location:    loc(file, lineNo, line),
					Recommendation: "Verify whether this value is a real secret; if so, rotate it and move it " +
						"out of the repository.",
				})
			}
		}
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No hardcoded API keys or secrets detected."), nil
	}
	return fails, nil
}
