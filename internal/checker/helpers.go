package checker

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joshdayorg/vibe-check/internal/findfiles"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

// sourceGlobs covers the client/server source files most checkers scan.
var sourceGlobs = []string{
	"**/*.{js,jsx,ts,tsx,mjs,cjs}",
	"**/*.{vue,svelte,astro}",
}

const maxSnippetLen = 180

// snippet trims a matched line for inclusion in a Location, cutting on a
// rune boundary so multi-byte characters are never split.
func snippet(line string) string {
	s := strings.TrimSpace(line)
	if len(s) <= maxSnippetLen {
		return s
	}
	cut := maxSnippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func loc(file string, line int, code string) *finding.Location {
	return &finding.Location{File: file, Line: line, Code: snippet(code)}
}

var exampleFileMarkers = []string{
	"example", "sample", "fixture", "mock", "demo", "template",
	"test", "spec", "__tests__", "__mocks__", ".stories.",
}

// looksLikeExampleFile reports whether a path signals test or placeholder
// content that should not produce secret-style findings.
func looksLikeExampleFile(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range exampleFileMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

var placeholderLineRe = regexp.MustCompile(`(?i)(example|sample|placeholder|your[_-]?(api[_-]?)?key|xxxx|dummy|changeme|change[_-]me|redacted|fake|<[a-z_ -]+>)`)

// looksLikePlaceholder reports whether the line itself marks its value as
// non-real (docs, templates, commented samples).
func looksLikePlaceholder(line string) bool {
	return placeholderLineRe.MatchString(line)
}

// scanLines runs fn over every line of every discovered file, honoring
// context cancellation between files. The bool return tells the caller
// whether any file matched the globs at all.
func scanLines(ctx context.Context, opts Options, globs []string, fn func(file string, lineNo int, line string)) (scanned bool, err error) {
	files, err := findfiles.Find(opts.Root, globs, opts.IgnorePatterns)
	if err != nil {
		return false, err
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return scanned, err
		}
		lines, ok := findfiles.ReadLines(opts.Root, file)
		if !ok {
			continue
		}
		scanned = true
		if opts.Verbose && opts.Logger != nil {
			opts.Logger.Debugf("scanning %s (%d lines)", file, len(lines))
		}
		for i, line := range lines {
			fn(file, i+1, line)
		}
	}
	return scanned, nil
}

// Typed accessors for the open checkerOptions bag. The bag comes from
// JSON/YAML, so slices arrive as []any and need per-element coercion.

func stringSliceSetting(settings map[string]any, key string, def []string) []string {
	raw, ok := settings[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case []string:
		if len(v) > 0 {
			return v
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}

func boolSetting(settings map[string]any, key string, def bool) bool {
	if v, ok := settings[key].(bool); ok {
		return v
	}
	return def
}

func stringSetting(settings map[string]any, key, def string) string {
	if v, ok := settings[key].(string); ok && v != "" {
		return v
	}
	return def
}
