package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/findfiles"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

var defaultRouteGlobs = []string{
	"app/api/**/route.{ts,js}",
	"src/app/api/**/route.{ts,js}",
	"pages/api/**/*.{ts,js}",
	"src/pages/api/**/*.{ts,js}",
	"**/routes/**/*.{ts,js}",
}

var middlewareGlobs = []string{
	"middleware.{ts,js}",
	"src/middleware.{ts,js}",
}

// Import/usage signatures of the common rate-limiting libraries.
var rateLimitSignatureRe = regexp.MustCompile(`(?i)(@upstash/ratelimit|express-rate-limit|rate-limiter-flexible|next-rate-limit|hono/rate-limit|\bRatelimit\b|rateLimit(?:er)?\s*\()`)

var mutatingHandlerRe = regexp.MustCompile(`export\s+(?:async\s+)?function\s+(POST|PUT|PATCH|DELETE)\b|\.(post|put|patch|delete)\s*\(`)

var handlerExportRe = regexp.MustCompile(`export\s+(?:default\b|(?:async\s+)?function\s+(GET|POST|PUT|PATCH|DELETE)\b|const\s+(GET|POST|PUT|PATCH|DELETE)\s*=)`)

type rateLimiting struct{ meta }

// NewRateLimiting flags API route files that export handlers without any
// known rate-limiting signature. A middleware file carrying a signature
// covers the whole tree. Route locations are configurable via the
// "routeGlobs" checker option.
func NewRateLimiting() Checker {
	return &rateLimiting{meta{
		id:          "rate-limiting",
		name:        "Rate Limiting",
		description: "Detects API routes without rate limiting, which invites abuse and runaway costs.",
	}}
}

func (c *rateLimiting) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	// Codebase-wide middleware with a rate-limit signature covers all routes.
	middlewareFiles, err := findfiles.Find(opts.Root, middlewareGlobs, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	for _, file := range middlewareFiles {
		if content, ok := findfiles.ReadFile(opts.Root, file); ok && rateLimitSignatureRe.MatchString(content) {
			return c.pass(fmt.Sprintf("Rate limiting middleware detected in %s; routes are covered globally.", file)), nil
		}
	}

	routeGlobs := stringSliceSetting(opts.Settings, "routeGlobs", defaultRouteGlobs)
	routeFiles, err := findfiles.Find(opts.Root, routeGlobs, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	if len(routeFiles) == 0 {
		return c.pass("No API route files found; nothing to verify."), nil
	}

	var fails []finding.Finding
	for _, file := range routeFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, ok := findfiles.ReadFile(opts.Root, file)
		if !ok {
			continue
		}
		if rateLimitSignatureRe.MatchString(content) || !handlerExportRe.MatchString(content) {
			continue
		}

		severity := finding.SeverityMedium
		details := fmt.Sprintf("Route %s exports a handler without any rate limiting.", file)
		if mutatingHandlerRe.MatchString(content) {
			severity = finding.SeverityHigh
			details = fmt.Sprintf("Route %s handles mutating requests (POST/PUT/PATCH/DELETE) without any rate limiting.", file)
		}

		fails = append(fails, finding.Finding{
			ID:          "rate-limiting-missing",
			Name:        c.name,
			Description: c.description,
			Severity:    severity,
			Details:     details,
			Recommendation: "Add rate limiting to this route or to a shared middleware, e.g. @upstash/ratelimit " +
				"for serverless or express-rate-limit for Node servers.",
		})
	}

	if len(fails) == 0 {
		return c.pass(fmt.Sprintf("All %d route files carry a rate-limiting signature.", len(routeFiles))), nil
	}
	return fails, nil
}
