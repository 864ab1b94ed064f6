package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

func TestPublicEnvFlagsPrefixedSecret(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env.local": "NEXT_PUBLIC_API_SECRET_KEY=sssh\n",
	})

	findings, err := NewPublicEnv().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	f := findings[0]
	if f.Passed || f.ID != "public-env-exposed" || f.Severity != finding.SeverityHigh {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if strings.Contains(f.Location.Code, "sssh") {
		t.Errorf("location code must not reproduce the secret value: %q", f.Location.Code)
	}
}

// A sensitive name without the public prefix stays server-side and passes.
func TestPublicEnvPassesWithoutPublicPrefix(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env": "API_KEY=xyz\n",
	})

	findings, err := NewPublicEnv().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("expected single pass, got %+v", findings)
	}
}

func TestPublicEnvIgnoresCommentsAndSafeNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env": "# NEXT_PUBLIC_SECRET_KEY=commented-out\n" +
			"NEXT_PUBLIC_STRIPE_PUBLISHABLE_KEY=pk_live_ok\n" +
			"NEXT_PUBLIC_SUPABASE_ANON_KEY=meant-to-be-public\n" +
			"NEXT_PUBLIC_APP_NAME=demo\n",
	})

	findings, err := NewPublicEnv().Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("expected pass, got %+v", findings)
	}
}

func TestPublicEnvCustomPrefixes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env": "APP_PUBLIC_DB_PASSWORD=oops\n",
	})

	opts := testOpts(t, root)
	opts.Settings = map[string]any{"prefixes": []any{"APP_PUBLIC_"}}
	findings, err := NewPublicEnv().Check(context.Background(), opts)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 || findings[0].Passed {
		t.Fatalf("expected failure under custom prefix, got %+v", findings)
	}
}
