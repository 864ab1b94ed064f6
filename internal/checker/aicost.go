package checker

import (
	"context"
	"fmt"
	"regexp"

	"github.com/joshdayorg/vibe-check/internal/findfiles"
	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	aiCallSiteRe = regexp.MustCompile(`(?i)(completions\.create|messages\.create|chat\.create|generateContent|generateText|getGenerativeModel|new\s+(OpenAI|Anthropic|GoogleGenerativeAI)\s*\()`)
	maxTokensRe  = regexp.MustCompile(`(?i)(max_tokens|maxTokens|max_completion_tokens|maxOutputTokens)`)
	budgetRe     = regexp.MustCompile(`(?i)(budget|quota|usage|spend|cost[_A-Z]|credit)`)
	errHandleRe  = regexp.MustCompile(`(?i)(\btry\b|\bcatch\b|\.catch\s*\()`)
)

type aiCost struct{ meta }

// NewAICost finds generative-AI SDK call sites and checks each file for
// three independent cost controls: request-shaping parameters, any
// budget/usage tracking, and error handling. Each missing dimension is its
// own finding.
func NewAICost() Checker {
	return &aiCost{meta{
		id:          "ai-cost",
		name:        "AI Cost Controls",
		description: "Detects generative AI usage without token limits, budget tracking, or error handling.",
	}}
}

func (c *aiCost) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	files, err := findfiles.Find(opts.Root, sourceGlobs, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	var fails []finding.Finding
	callSites := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if looksLikeExampleFile(file) {
			continue
		}
		lines, ok := findfiles.ReadLines(opts.Root, file)
		if !ok {
			continue
		}

		siteLine, siteCode := 0, ""
		hasMaxTokens, hasBudget, hasErrHandling := false, false, false
		for i, line := range lines {
			if siteLine == 0 && aiCallSiteRe.MatchString(line) {
				siteLine, siteCode = i+1, line
			}
			hasMaxTokens = hasMaxTokens || maxTokensRe.MatchString(line)
			hasBudget = hasBudget || budgetRe.MatchString(line)
			hasErrHandling = hasErrHandling || errHandleRe.MatchString(line)
		}
		if siteLine == 0 {
			continue
		}
		callSites++

		if !hasMaxTokens {
			fails = append(fails, finding.Finding{
				ID:          "ai-cost-no-max-tokens",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("AI call in %s sets no output token limit; a single request can run up the maximum bill.", file),
				Location:    loc(file, siteLine, siteCode),
				Recommendation: "Pass max_tokens (or the provider's equivalent) sized to what the feature " +
					"actually needs.",
			})
		}
		if !hasBudget {
			fails = append(fails, finding.Finding{
				ID:          "ai-cost-no-budget-tracking",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("No usage or budget tracking identifiers found near the AI call in %s.", file),
				Location:    loc(file, siteLine, siteCode),
				Recommendation: "Track per-user and aggregate usage, and enforce a spending cutoff before " +
					"dispatching requests.",
			})
		}
		if !hasErrHandling {
			fails = append(fails, finding.Finding{
				ID:          "ai-cost-no-error-handling",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityLow,
				Details:     fmt.Sprintf("AI call in %s has no surrounding error handling; failures can retry-loop or crash the route.", file),
				Location:    loc(file, siteLine, siteCode),
				Recommendation: "Wrap the call in try/catch and fail closed; unbounded retries against a paid " +
					"API are a cost incident.",
			})
		}
	}

	if len(fails) == 0 {
		if callSites == 0 {
			return c.pass("No generative AI SDK usage found."), nil
		}
		return c.pass(fmt.Sprintf("All %d AI call sites carry token limits, budget tracking, and error handling.", callSites)), nil
	}
	return fails, nil
}
