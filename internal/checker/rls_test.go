package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

func TestRLSFlagsTableWithoutEnable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"db/schema.sql": "CREATE TABLE users (\n  id uuid primary key\n);\n",
	})

	findings, err := NewRLS().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	f := findings[0]
	if f.Passed || f.ID != "rls-disabled" {
		t.Fatalf("expected rls-disabled failure, got %+v", f)
	}
	if f.Severity != finding.SeverityHigh {
		t.Errorf("severity = %q, want high", f.Severity)
	}
	if !strings.Contains(f.Details, `"users"`) {
		t.Errorf("details should name the table: %q", f.Details)
	}
	if f.Location == nil || f.Location.File != "db/schema.sql" || f.Location.Line != 1 {
		t.Errorf("location = %+v", f.Location)
	}
}

func TestRLSEnableInLaterMigrationCountsAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"migrations/001_create.sql": "create table if not exists public.orders (id int);\n",
		"migrations/002_rls.sql":    "alter table orders enable row level security;\n",
	})

	findings, err := NewRLS().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("expected pass, got %+v", findings)
	}
}

func TestRLSFlagsPermissivePolicyAndBroadGrant(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"db/policies.sql": "alter table posts enable row level security;\n" +
			"create table posts (id int);\n" +
			"create policy allow_all on posts using (true);\n" +
			"grant all on posts to anon;\n",
	})

	findings, err := NewRLS().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	var gotPermissive, gotGrant bool
	for _, f := range findings {
		switch f.ID {
		case "rls-permissive-policy":
			gotPermissive = true
			if f.Severity != finding.SeverityHigh {
				t.Errorf("permissive policy severity = %q", f.Severity)
			}
		case "rls-broad-grant":
			gotGrant = true
			if f.Severity != finding.SeverityMedium {
				t.Errorf("broad grant severity = %q", f.Severity)
			}
		case "rls-disabled":
			t.Errorf("posts has RLS enabled, must not be flagged disabled")
		}
	}
	if !gotPermissive || !gotGrant {
		t.Errorf("expected permissive + grant findings, got %+v", findings)
	}
}

func TestRLSCustomGlobsSetting(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"supabase/migrations/1.sql": "create table notes (id int);\n",
		"unrelated/schema.sql":      "create table ignored_elsewhere (id int);\n",
	})

	opts := testOpts(t, root)
	opts.Settings = map[string]any{"globs": []any{"supabase/**/*.sql"}}
	findings, err := NewRLS().Check(context.Background(), opts)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 || findings[0].ID != "rls-disabled" {
		t.Fatalf("expected one rls-disabled from supabase dir only, got %+v", findings)
	}
	if !strings.Contains(findings[0].Details, `"notes"`) {
		t.Errorf("wrong table flagged: %q", findings[0].Details)
	}
}
