// Package scan orchestrates a single scan: it validates the root, runs the
// enabled checkers in registry order, converts per-checker failures into
// synthetic error findings, and applies config-driven post-processing.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joshdayorg/vibe-check/internal/checker"
	"github.com/joshdayorg/vibe-check/internal/config"
	"github.com/joshdayorg/vibe-check/internal/finding"
	"go.uber.org/zap"
)

// ErrInvalidRoot is the one fatal scan error: the requested directory does
// not exist or is not a directory. Everything past this point degrades to
// partial results instead of aborting.
var ErrInvalidRoot = errors.New("scan root is not a directory")

// Summary is the tally attached to a completed scan.
type Summary struct {
	Root     string        `json:"root"`
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"-"`
}

// Result is one completed scan: post-processed findings plus the tally.
type Result struct {
	Findings []finding.Finding
	Summary  Summary
}

// Options configures one Runner.Run invocation.
type Options struct {
	// Root is the directory to scan; made absolute before use.
	Root string
	// IgnorePatterns are merged CLI + config ignore globs.
	IgnorePatterns []string
	// SkipCheckers is the merged CLI + config skip list.
	SkipCheckers []string
	// Verbose is forwarded to every checker.
	Verbose bool
	// Config may be nil; it drives checker options and post-processing.
	Config *config.Config
}

// Runner executes the checker registry against one root.
type Runner struct {
	Logger   *zap.SugaredLogger
	Checkers []checker.Checker // defaults to checker.Registry()
}

// Run executes the scan. One checker's failure never aborts the others:
// errors and panics inside a checker become a medium-severity synthetic
// finding and the loop continues.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, opts.Root)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, opts.Root)
	}

	registry := r.Checkers
	if registry == nil {
		registry = checker.Registry()
	}
	enabled := checker.Filter(registry, opts.SkipCheckers)
	r.Logger.Infof("scanning %s with %d checkers", root, len(enabled))

	var all []finding.Finding
	for _, c := range enabled {
		checkOpts := checker.Options{
			Root:           root,
			IgnorePatterns: opts.IgnorePatterns,
			Verbose:        opts.Verbose,
			Logger:         r.Logger,
			Settings:       opts.Config.OptionsFor(c.ID()),
		}
		findings, err := r.runOne(ctx, c, checkOpts)
		if err != nil {
			r.Logger.Warnf("checker %s failed: %v", c.ID(), err)
			findings = []finding.Finding{errorFinding(c, err)}
		}
		all = append(all, findings...)
	}

	all = Apply(all, opts.Config)

	result := &Result{Findings: all, Summary: summarize(root, all, time.Since(start))}
	r.Logger.Infof("scan complete: %d findings (%d failed) in %s",
		result.Summary.Total, result.Summary.Failed, result.Summary.Duration.Round(time.Millisecond))
	return result, nil
}

// runOne isolates a single checker invocation so a panicking rule table
// cannot take down the scan.
func (r *Runner) runOne(ctx context.Context, c checker.Checker, opts checker.Options) (findings []finding.Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			findings = nil
			err = fmt.Errorf("checker panic: %v", rec)
		}
	}()
	return c.Check(ctx, opts)
}

func errorFinding(c checker.Checker, err error) finding.Finding {
	return finding.Finding{
		ID:          c.ID() + "-error",
		Name:        c.Name(),
		Description: c.Description(),
		Severity:    finding.SeverityMedium,
		Passed:      false,
		Details:     fmt.Sprintf("Checker %q could not complete: %v", c.ID(), err),
	}
}

func summarize(root string, findings []finding.Finding, d time.Duration) Summary {
	s := Summary{Root: root, Total: len(findings), Duration: d}
	for _, f := range findings {
		if f.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
