package checker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

var (
	createTableRe = regexp.MustCompile(`(?i)create\s+table\s+(?:if\s+not\s+exists\s+)?(?:"?[A-Za-z_][A-Za-z0-9_]*"?\.)?"?([A-Za-z_][A-Za-z0-9_]*)"?`)
	enableRLSRe   = regexp.MustCompile(`(?i)alter\s+table\s+(?:only\s+)?(?:"?[A-Za-z_][A-Za-z0-9_]*"?\.)?"?([A-Za-z_][A-Za-z0-9_]*)"?\s+enable\s+row\s+level\s+security`)
	permissiveRe  = regexp.MustCompile(`(?i)using\s*\(\s*true\s*\)`)
	broadGrantRe  = regexp.MustCompile(`(?i)grant\s+all\b[^;]*\bto\s+(?:public|anon)\b`)
)

type rls struct{ meta }

// NewRLS checks SQL files for tables created without row-level security and
// for policies or grants that neutralize it. The enable statement may live
// in a different migration file than the create, so state is collected
// across all matched files before anything is flagged.
func NewRLS() Checker {
	return &rls{meta{
		id:          "rls",
		name:        "Row Level Security",
		description: "Detects SQL tables without row-level security and permissive policies that bypass it.",
	}}
}

type tableSite struct {
	file string
	line int
	code string
}

func (c *rls) Check(ctx context.Context, opts Options) ([]finding.Finding, error) {
	globs := stringSliceSetting(opts.Settings, "globs", []string{"**/*.sql"})

	created := map[string]tableSite{}
	var createdOrder []string
	enabled := map[string]bool{}
	var fails []finding.Finding

	scanned, err := scanLines(ctx, opts, globs, func(file string, lineNo int, line string) {
		if m := createTableRe.FindStringSubmatch(line); m != nil {
			table := strings.ToLower(m[1])
			if _, seen := created[table]; !seen {
				created[table] = tableSite{file, lineNo, line}
				createdOrder = append(createdOrder, table)
			}
		}
		if m := enableRLSRe.FindStringSubmatch(line); m != nil {
			enabled[strings.ToLower(m[1])] = true
		}
		if permissiveRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "rls-permissive-policy",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityHigh,
				Details:     fmt.Sprintf("Policy in %s:%d uses `using (true)`, granting every row to every role.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Scope the policy to the requesting user, e.g. `using (auth.uid() = user_id)`, " +
					"instead of allowing all rows.",
			})
		}
		if broadGrantRe.MatchString(line) {
			fails = append(fails, finding.Finding{
				ID:          "rls-broad-grant",
				Name:        c.name,
				Description: c.description,
				Severity:    finding.SeverityMedium,
				Details:     fmt.Sprintf("Broad grant in %s:%d gives unscoped access to public/anon roles.", file, lineNo),
				Location:    loc(file, lineNo, line),
				Recommendation: "Grant only the specific privileges each role needs and rely on policies for " +
					"row filtering.",
			})
		}
	})
	if err != nil {
		return nil, err
	}
	if !scanned {
		return c.pass("No SQL files found; nothing to verify."), nil
	}

	for _, table := range createdOrder {
		if enabled[table] {
			continue
		}
		site := created[table]
		fails = append(fails, finding.Finding{
			ID:          "rls-disabled",
			Name:        c.name,
			Description: c.description,
			Severity:    finding.SeverityHigh,
			Details:     fmt.Sprintf("Table %q is created without a matching ENABLE ROW LEVEL SECURITY statement.", table),
			Location:    loc(site.file, site.line, site.code),
			Recommendation: fmt.Sprintf("Add `ALTER TABLE %s ENABLE ROW LEVEL SECURITY;` and define policies "+
				"before exposing the table through an API.", table),
		})
	}

	if len(fails) == 0 {
		return c.pass(fmt.Sprintf("All %d tables have row-level security enabled and no permissive policies were found.", len(created))), nil
	}
	return fails, nil
}
