// Package config loads and merges vibe-check configuration: an optional
// vibecheck.config.json/.yaml discovered at or above the scan root, layered
// over a built-in profile via the extends mechanism.
package config

import (
	"github.com/joshdayorg/vibe-check/internal/finding"
)

// SeverityOverride replaces the severity of a failed finding by exact id.
type SeverityOverride struct {
	ID       string `mapstructure:"id" json:"id"`
	Severity string `mapstructure:"severity" json:"severity"`
}

// ReportOptions is the config-file counterpart of the report CLI flags.
// CLI flags win over these when both are given.
type ReportOptions struct {
	Format     string `mapstructure:"format" json:"format,omitempty"`
	Output     string `mapstructure:"output" json:"output,omitempty"`
	ShowPassed *bool  `mapstructure:"showPassed" json:"showPassed,omitempty"`
}

// Config is one loaded configuration layer. Zero value means "scan with
// defaults".
type Config struct {
	Extends           string                    `mapstructure:"extends" json:"extends,omitempty"`
	IgnorePatterns    []string                  `mapstructure:"ignorePatterns" json:"ignorePatterns,omitempty"`
	SkipCheckers      []string                  `mapstructure:"skipCheckers" json:"skipCheckers,omitempty"`
	SeverityOverrides []SeverityOverride        `mapstructure:"severityOverrides" json:"severityOverrides,omitempty"`
	IgnoreIssues      []string                  `mapstructure:"ignoreIssues" json:"ignoreIssues,omitempty"`
	ReportOptions     ReportOptions             `mapstructure:"reportOptions" json:"reportOptions,omitempty"`
	CheckerOptions    map[string]map[string]any `mapstructure:"checkerOptions" json:"checkerOptions,omitempty"`
}

// Merge layers child over base: list fields append base-then-child, checker
// options shallow-merge with the child's keys winning, report scalars take
// the child's value when set. Neither input is mutated.
func Merge(base, child *Config) *Config {
	if base == nil {
		return child
	}
	if child == nil {
		return base
	}

	out := &Config{}
	out.IgnorePatterns = appendCopy(base.IgnorePatterns, child.IgnorePatterns)
	out.SkipCheckers = appendCopy(base.SkipCheckers, child.SkipCheckers)
	out.SeverityOverrides = append(append([]SeverityOverride(nil), base.SeverityOverrides...), child.SeverityOverrides...)
	out.IgnoreIssues = appendCopy(base.IgnoreIssues, child.IgnoreIssues)

	out.ReportOptions = base.ReportOptions
	if child.ReportOptions.Format != "" {
		out.ReportOptions.Format = child.ReportOptions.Format
	}
	if child.ReportOptions.Output != "" {
		out.ReportOptions.Output = child.ReportOptions.Output
	}
	if child.ReportOptions.ShowPassed != nil {
		out.ReportOptions.ShowPassed = child.ReportOptions.ShowPassed
	}

	if len(base.CheckerOptions) > 0 || len(child.CheckerOptions) > 0 {
		out.CheckerOptions = map[string]map[string]any{}
		for id, opts := range base.CheckerOptions {
			out.CheckerOptions[id] = copyMap(opts)
		}
		for id, opts := range child.CheckerOptions {
			if existing, ok := out.CheckerOptions[id]; ok {
				for k, v := range opts {
					existing[k] = v
				}
			} else {
				out.CheckerOptions[id] = copyMap(opts)
			}
		}
	}
	return out
}

func appendCopy(base, child []string) []string {
	if len(base)+len(child) == 0 {
		return nil
	}
	return append(append([]string(nil), base...), child...)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// OverrideMap folds the override list into an id lookup, last entry wins.
// Entries with an unparseable severity are dropped.
func (c *Config) OverrideMap() map[string]finding.Severity {
	if c == nil || len(c.SeverityOverrides) == 0 {
		return nil
	}
	out := make(map[string]finding.Severity, len(c.SeverityOverrides))
	for _, o := range c.SeverityOverrides {
		sev, err := finding.ParseSeverity(o.Severity)
		if err != nil {
			continue
		}
		out[o.ID] = sev
	}
	return out
}

// IgnoreSet returns the suppressed finding ids as a set.
func (c *Config) IgnoreSet() map[string]struct{} {
	if c == nil || len(c.IgnoreIssues) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(c.IgnoreIssues))
	for _, id := range c.IgnoreIssues {
		out[id] = struct{}{}
	}
	return out
}

// OptionsFor returns the opaque options bag configured for one checker id,
// or nil when absent.
func (c *Config) OptionsFor(id string) map[string]any {
	if c == nil {
		return nil
	}
	return c.CheckerOptions[id]
}
