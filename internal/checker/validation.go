package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/findfiles"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	// Template-literal interpolation of request data into a query or shell
	// call on the same line.
	rawInterpolationRe = regexp.MustCompile("(?i)\\b(query|execute|exec|raw|run)\\s*\\(\\s*`[^`]*\\$\\{[^}]*\\b(req|request|body|params|input)\\b")
	bodyParseRe        = regexp.MustCompile(`(?i)(req(uest)?\.body\b|req(uest)?\.json\s*\(\s*\)|formData\s*\(\s*\))`)
	validationSigRe    = regexp.MustCompile(`(?i)(\bzod\b|\bz\.object\b|\bjoi\b|\byup\b|valibot|\.parse\s*\(|safeParse|validate\s*\()`)
)

type inputValidation struct{ meta }

// NewInputValidation flags request data interpolated straight into SQL or
// shell strings, and route files that read request bodies without any
// validation-library signature. The latter is reported once per file.
func NewInputValidation() Checker {
	return &inputValidation{meta{
		id:          "input-validation",
		name:        "Input Validation",
		description: "Detects unvalidated request input: raw interpolation into queries and body parsing without schema validation.",
	}}
}

func (c *inputValidation) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	routeGlobs := stringSliceSetting(opts.Settings, "routeGlobs", defaultRouteGlobs)

	var fails []finding.Finding
	_, err := scanLines(ctx, opts, sourceGlobs, func(file string, lineNo int, line string) {
		if looksLikeExampleFile(file) {
			return
		}
		if rawInterpolationRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "input-validation-interpolation",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityHigh,
				Details:     fmt.Sprintf("Request data interpolated into a query or command string in %s:%d.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Use parameterized queries (placeholders) instead of string interpolation; " +
					"interpolated request data is a direct injection path.",
			})
		}
	})
	if err != nil {
		return nil, err
	}

	routeFiles, err := findfiles.Find(opts.Root, routeGlobs, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	for _, file := range routeFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, ok := findfiles.ReadFile(opts.Root, file)
		if !ok {
			continue
		}
		if bodyParseRe.MatchString(content) && !validationSigRe.MatchString(content) {
			fails = append(fails, finding.Finding{
				ID:          "input-validation-missing",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("Route %s parses a request body without any recognizable schema validation.", file),
				Recommendation: "Validate incoming bodies with a schema library (zod, joi, yup) before using " +
					"their fields.",
			})
		}
	}

	if len(fails) == 0 {
		return c.pass("No unvalidated input patterns detected."), nil
	}
	return fails, nil
}
