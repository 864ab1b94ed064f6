// Package checker contains the detection rules. Each checker owns one
// concern, discovers its own files through the findfiles collaborator, and
// scans them line-by-line against a table of named regular expressions.
// Detection is deliberately syntax-unaware: matches inside comments or
// string literals are accepted noise, corrected through the config
// suppression list rather than by parsing source.
package checker

import (
	"context"

	"github.com/joshdayorg/vibe-check/internal/finding"
	"go.uber.org/zap"
)

// Options carries everything a checker may consult. Checkers read only
// from it and from the filesystem under Root; there is no shared state
// between checkers.
type Options struct {
	// Root is the absolute scan root directory.
	Root string
	// IgnorePatterns are merged CLI and config ignore globs, forwarded to
	// file discovery.
	IgnorePatterns []string
	// Verbose enables per-file debug logging.
	Verbose bool
	// Logger is never nil when run through the orchestrator.
	Logger *zap.SugaredLogger
	// Settings is this checker's entry from the config checkerOptions bag,
	// keyed by checker id. Shape is checker-defined; nil when unconfigured.
	Settings map[string]any
}

// Checker is the contract every detection rule set satisfies.
//
// Check never returns an empty list: it reports either one or more failed
// findings, or exactly one synthetic passing finding. Expected absences
// (missing directory, zero matching files) are passes, not errors; only
// genuinely unexpected failures reach the error return, where the
// orchestrator converts them into an error finding and moves on.
type Checker interface {
	ID() string
	Name() string
	Description() string
	Check(ctx context.Context, opts Options) ([]finding.Finding, error)
}

// meta supplies the identity methods so each checker only declares its
// strings once.
type meta struct {
	id          string
	name        string
	description string
}

func (m meta) ID() string          { return m.id }
func (m meta) Name() string        { return m.name }
func (m meta) Description() string { return m.description }

// pass builds the checker's single all-clear finding.
func (m meta) pass(details string) []finding.Finding {
	return []finding.Finding{finding.Pass(m.id, m.name, details)}
}

// Registry returns all checkers in their fixed execution order.
func Registry() []Checker {
	return []Checker{
		NewAPIKeys(),
		NewPublicEnv(),
		NewRLS(),
		NewRateLimiting(),
		NewJWTStorage(),
		NewCORS(),
		NewCookies(),
		NewXSS(),
		NewAuth(),
		NewConfigCheck(),
		NewInfoDisclosure(),
		NewInputValidation(),
		NewAICost(),
	}
}

// Filter removes checkers whose id appears in skip, preserving order.
func Filter(checkers []Checker, skip []string) []Checker {
	if len(skip) == 0 {
		return checkers
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, id := range skip {
		skipped[id] = struct{}{}
	}
	out := make([]Checker, 0, len(checkers))
	for _, c := range checkers {
		if _, ok := skipped[c.ID()]; !ok {
			out = append(out, c)
		}
	}
	return out
}
