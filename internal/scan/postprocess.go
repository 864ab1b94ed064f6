package scan

import (
	"github.com/joshdayorg/vibe-check/internal/config"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

// Apply runs the config-driven transformations over a raw result set:
// findings whose id is suppressed are dropped, and failed findings with a
// configured severity override are replaced by an overridden copy. Input
// order is preserved apart from drops, and the input slice is never
// mutated.
func Apply(findings []finding.Finding, cfg *config.Config) []finding.Finding {
	if cfg == nil {
		return findings
	}
	ignored := cfg.IgnoreSet()
	overrides := cfg.OverrideMap()
	if len(ignored) == 0 && len(overrides) == 0 {
		return findings
	}

	out := make([]finding.Finding, 0, len(findings))
	for _, f := range findings {
		if _, drop := ignored[f.ID]; drop {
			continue
		}
		// A passing finding has nothing to override.
		if sev, ok := overrides[f.ID]; ok && !f.Passed {
			f = f.WithSeverity(sev)
		}
		out = append(out, f)
	}
	return out
}
