// Package findfiles is the file-discovery collaborator used by every
// checker: a recursive walk of the scan root filtered by include globs,
// ignore globs, a default exclude set, and the root .gitignore.
package findfiles

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxTextScanBytes caps how much of a file ReadLines will load. Larger
// files are treated as non-text and skipped.
const MaxTextScanBytes = 1 << 20

var defaultExcludeDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	".next":        {},
	".nuxt":        {},
	".vercel":      {},
	".cache":       {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"coverage":     {},
	"vendor":       {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
}

// Find walks root and returns the root-relative slash paths of files
// matching any of the include patterns, excluding defaults, caller-supplied
// ignore globs, and simple .gitignore entries. Results are in walk order so
// output is deterministic for a given tree. A missing root yields an empty
// slice, not an error.
func Find(root string, patterns, ignores []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	allIgnores := append([]string(nil), ignores...)
	allIgnores = append(allIgnores, readGitignore(absRoot)...)

	var matches []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, skip := defaultExcludeDirs[d.Name()]; skip {
				return fs.SkipDir
			}
			if ignored(rel+"/", allIgnores) || ignored(rel, allIgnores) {
				return fs.SkipDir
			}
			return nil
		}

		if ignored(rel, allIgnores) {
			return nil
		}
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				continue // malformed pattern, same treatment as no match
			}
			if !ok {
				// Allow bare-name patterns like "*.sql" to match at any depth.
				if !strings.Contains(pattern, "/") {
					if ok2, _ := doublestar.Match("**/"+pattern, rel); ok2 {
						ok = true
					}
				}
			}
			if ok {
				matches = append(matches, rel)
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return matches, nil
}

func ignored(rel string, ignores []string) bool {
	for _, pattern := range ignores {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match("**/"+pattern, rel); ok {
				return true
			}
		}
	}
	return false
}

// readGitignore extracts the simple-pattern subset of the root .gitignore:
// plain names, *.ext globs, and paths. Negations and anchored rules are
// beyond what a regex scanner needs and are skipped.
func readGitignore(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		if strings.HasSuffix(line, "/") {
			line = strings.TrimSuffix(line, "/")
			patterns = append(patterns, line, line+"/**")
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// ReadLines reads a file under root and splits it into lines. Binary
// content and files over MaxTextScanBytes are skipped with ok=false;
// per-file read errors are likewise swallowed so one unreadable file never
// aborts a checker.
func ReadLines(root, rel string) (lines []string, ok bool) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil || info.Size() > MaxTextScanBytes {
		return nil, false
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	if bytes.IndexByte(head[:n], 0) >= 0 {
		return nil, false
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, false
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), MaxTextScanBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		return nil, false
	}
	return lines, true
}

// ReadFile is ReadLines without the split, for checkers that match
// file-wide rather than line-by-line.
func ReadFile(root, rel string) (string, bool) {
	lines, ok := ReadLines(root, rel)
	if !ok {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
