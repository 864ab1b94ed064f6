package finding

import (
	"strings"
	"testing"
)

func TestSeverityRankOrdering(t *testing.T) {
	for i := 1; i < len(Severities); i++ {
		if Severities[i-1].Rank() >= Severities[i].Rank() {
			t.Errorf("expected %s to rank before %s", Severities[i-1], Severities[i])
		}
	}
	if Severity("info").Rank() <= SeverityLow.Rank() {
		t.Errorf("unknown severity should rank after low")
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"critical", "high", "medium", "low"} {
		sev, err := ParseSeverity(s)
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", s, err)
		}
		if string(sev) != s {
			t.Errorf("ParseSeverity(%q) = %q", s, sev)
		}
	}

	if _, err := ParseSeverity("info"); err == nil {
		t.Errorf("expected error for unknown severity")
	}
}

func TestPass(t *testing.T) {
	f := Pass("api-keys", "API Key Exposure", "no matching files found")
	if !f.Passed {
		t.Fatalf("expected Passed=true")
	}
	if f.Location != nil {
		t.Errorf("passing finding must not carry a location")
	}
	if f.Recommendation != "" {
		t.Errorf("passing finding must not carry a recommendation")
	}
}

func TestWithSeverityRecordsOverride(t *testing.T) {
	orig := Finding{
		ID:       "cors-wildcard",
		Severity: SeverityHigh,
		Details:  "wildcard origin in next.config.js",
	}

	low := orig.WithSeverity(SeverityLow)
	if low.Severity != SeverityLow {
		t.Fatalf("severity not overridden: %s", low.Severity)
	}
	if !strings.HasPrefix(low.Details, orig.Details) {
		t.Errorf("override note must append, not replace: %q", low.Details)
	}
	if !strings.Contains(low.Details, "high -> low") {
		t.Errorf("override note missing old/new severities: %q", low.Details)
	}
	if orig.Severity != SeverityHigh || strings.Contains(orig.Details, "overridden") {
		t.Errorf("original finding mutated: %+v", orig)
	}

	same := orig.WithSeverity(SeverityHigh)
	if same.Details != orig.Details {
		t.Errorf("no-change override must not annotate details")
	}
}
