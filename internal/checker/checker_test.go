package checker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func testOpts(t *testing.T, root string) Options {
	t.Helper()
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	return Options{Root: abs, Logger: zap.NewNop().Sugar()}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// Every checker must report exactly one passing finding for a tree with no
// matching files, never an empty list.
func TestAllCheckersPassOnEmptyTree(t *testing.T) {
	for _, c := range Registry() {
		t.Run(c.ID(), func(t *testing.T) {
			findings, err := c.Check(context.Background(), testOpts(t, t.TempDir()))
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if len(findings) != 1 {
				t.Fatalf("expected exactly one finding, got %d", len(findings))
			}
			f := findings[0]
			if !f.Passed {
				t.Errorf("expected passing finding, got %+v", f)
			}
			if f.ID != c.ID() {
				t.Errorf("pass finding id = %q, want %q", f.ID, c.ID())
			}
			if f.Location != nil {
				t.Errorf("pass finding must not carry a location")
			}
			if f.Details == "" {
				t.Errorf("pass finding must explain itself in details")
			}
		})
	}
}

func TestRegistryIDsUniqueAndKebab(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Registry() {
		if seen[c.ID()] {
			t.Errorf("duplicate checker id %q", c.ID())
		}
		seen[c.ID()] = true
		if c.Name() == "" || c.Description() == "" {
			t.Errorf("checker %q missing name or description", c.ID())
		}
	}
}

func TestFilterRemovesByID(t *testing.T) {
	all := Registry()
	kept := Filter(all, []string{"api-keys", "rls"})
	if len(kept) != len(all)-2 {
		t.Fatalf("expected %d checkers, got %d", len(all)-2, len(kept))
	}
	for _, c := range kept {
		if c.ID() == "api-keys" || c.ID() == "rls" {
			t.Errorf("skipped checker %q still present", c.ID())
		}
	}
	if got := Filter(all, nil); len(got) != len(all) {
		t.Errorf("nil skip list must keep everything")
	}
}

func TestSnippetCutsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("a", maxSnippetLen-1) + "é" + strings.Repeat("b", 20)

	got := snippet(long)
	if len(got) > maxSnippetLen {
		t.Fatalf("snippet length = %d, want <= %d", len(got), maxSnippetLen)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("snippet split a multi-byte rune: %q", got[len(got)-4:])
	}

	short := "const x = 1;"
	if snippet("  "+short+"  ") != short {
		t.Errorf("short lines must only be trimmed")
	}
}
