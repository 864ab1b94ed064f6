package config

// Built-in profiles, referenced from a config file's extends field as
// "vibe-check:<name>". Each is a plain Config literal; they go through the
// same Merge path as file-based bases.

var profiles = map[string]*Config{
	"recommended": {
		// Baseline: every checker on with its documented default severity.
	},
	"strict": {
		SeverityOverrides: []SeverityOverride{
			{ID: "rate-limiting-missing", Severity: "high"},
			{ID: "cookies-insecure", Severity: "high"},
			{ID: "info-disclosure-stack-trace", Severity: "high"},
			{ID: "info-disclosure-error-passthrough", Severity: "medium"},
			{ID: "config-check-build-checks-disabled", Severity: "medium"},
			{ID: "config-check-source-maps", Severity: "medium"},
			{ID: "input-validation-missing", Severity: "medium"},
			{ID: "ai-cost-no-error-handling", Severity: "medium"},
		},
	},
	"next": {
		CheckerOptions: map[string]map[string]any{
			"public-env": {
				"prefixes": []any{"NEXT_PUBLIC_"},
			},
			"rate-limiting": {
				"routeGlobs": []any{
					"app/api/**/route.ts",
					"app/api/**/route.js",
					"pages/api/**/*.ts",
					"pages/api/**/*.js",
				},
			},
			"config-check": {
				"framework": "next",
			},
		},
	},
	"supabase": {
		SeverityOverrides: []SeverityOverride{
			{ID: "rls-disabled", Severity: "critical"},
		},
		CheckerOptions: map[string]map[string]any{
			"rls": {
				"globs": []any{
					"supabase/**/*.sql",
					"supabase/migrations/**/*.sql",
					"migrations/**/*.sql",
				},
			},
			"api-keys": {
				"flagServiceRoleKeys": true,
			},
		},
	},
}

// Profile returns the named built-in profile, or nil when unknown. The
// caller gets a copy-on-merge guarantee from Merge, so handing out the
// shared literal is safe.
func Profile(name string) *Config {
	return profiles[name]
}

// ProfileNames lists the valid profile names in display order.
func ProfileNames() []string {
	return []string{"recommended", "strict", "next", "supabase"}
}
