package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var configFileGlobs = []string{
	"next.config.{js,mjs,ts}",
	"nuxt.config.{js,ts}",
	"vite.config.{js,ts,mjs}",
	"webpack.config.{js,ts}",
	"svelte.config.js",
	"astro.config.{mjs,ts}",
	"tsconfig.json",
	"**/settings.py",
	".env*",
}

var (
	buildChecksOffRe = regexp.MustCompile(`(?i)(ignoreBuildErrors\s*:\s*true|ignoreDuringBuilds\s*:\s*true|"strict"\s*:\s*false|skipLibCheck.*:.*true.*//.*errors)`)
	sourceMapsRe     = regexp.MustCompile(`(?i)(productionBrowserSourceMaps\s*:\s*true|sourcemap\s*:\s*true)`)
	debugModeRe      = regexp.MustCompile(`(?i)(^\s*DEBUG\s*=\s*(true|1)\b|debug\s*:\s*true)`)
)

type configCheck struct{ meta }

// NewConfigCheck flags framework configuration anti-patterns: build-time
// checks switched off, source maps shipped to production, and debug mode
// left on.
func NewConfigCheck() Checker {
	return &configCheck{meta{
		id:          "config-check",
		name:        "Configuration Anti-Patterns",
		description: "Detects framework configuration that disables safety checks or leaks internals in production.",
	}}
}

func (c *configCheck) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	var fails []finding.Finding
	_, err := scanLines(ctx, opts, configFileGlobs, func(file string, lineNo int, line string) {
		if buildChecksOffRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "config-check-build-checks-disabled",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("Build-time type or lint checks disabled in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Fix the underlying errors instead of suppressing the checks; suppressed " +
					"builds hide real defects.",
			})
		}
		if sourceMapsRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "config-check-source-maps",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("Production source maps enabled in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Disable production source maps, or restrict access to them; they expose your " +
					"original source to visitors.",
			})
		}
		if debugModeRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "config-check-debug-mode",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("Debug mode enabled in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Turn debug mode off outside development; debug output typically includes " +
					"stack traces, queries, and configuration values.",
			})
		}
	})
	if err != nil {
		return nil, err
	}

	if len(fails) == 0 {
		return c.pass("No configuration anti-patterns detected."), nil
	}
	return fails, nil
}
