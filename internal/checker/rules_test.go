package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/joshdayorg/vibe-check/internal/finding"
)

func runChecker(t *testing.T, c Checker, files map[string]string) []finding.Finding {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)
	findings, err := c.Check(context.Background(), testOpts(t, root))
	if err != nil {
		t.Fatalf("%s Check: %v", c.ID(), err)
	}
	if len(findings) == 0 {
		t.Fatalf("%s returned an empty finding list", c.ID())
	}
	return findings
}

func TestJWTStorageOneFindingPerFile(t *testing.T) {
	findings := runChecker(t, NewJWTStorage(), map[string]string{
		"src/auth.ts": "localStorage.setItem(\"authToken\", token);\n" +
			"localStorage.setItem(\"refreshToken\", refresh);\n",
	})
	if len(findings) != 1 {
		t.Fatalf("expected one finding per file, got %d", len(findings))
	}
	f := findings[0]
	if f.ID != "jwt-storage-browser" || f.Severity != finding.SeverityHigh || f.Passed {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

func TestCORSWildcardOrigin(t *testing.T) {
	findings := runChecker(t, NewCORS(), map[string]string{
		"server/index.ts": "res.setHeader(\"Access-Control-Allow-Origin\", \"*\");\n",
	})
	if len(findings) != 1 || findings[0].ID != "cors-wildcard-origin" || findings[0].Severity != finding.SeverityHigh {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestCORSReflectedOriginWithCredentialsIsCritical(t *testing.T) {
	findings := runChecker(t, NewCORS(), map[string]string{
		"server/cors.ts": "res.setHeader(\"Access-Control-Allow-Origin\", req.headers.origin);\n" +
			"res.setHeader(\"Access-Control-Allow-Credentials\", \"true\");\n",
	})
	var got bool
	for _, f := range findings {
		if f.ID == "cors-reflected-credentials" {
			got = true
			if f.Severity != finding.SeverityCritical {
				t.Errorf("severity = %q, want critical", f.Severity)
			}
		}
	}
	if !got {
		t.Fatalf("expected cors-reflected-credentials, got %+v", findings)
	}
}

func TestCORSBareMiddleware(t *testing.T) {
	findings := runChecker(t, NewCORS(), map[string]string{
		"server/app.js": "app.use(cors());\n",
	})
	if len(findings) != 1 || findings[0].ID != "cors-permissive-middleware" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestCookiesMissingFlags(t *testing.T) {
	findings := runChecker(t, NewCookies(), map[string]string{
		"server/session.js": "res.cookie(\"sid\", sid, { path: \"/\" });\n",
	})
	f := findings[0]
	if f.ID != "cookies-insecure" || f.Severity != finding.SeverityMedium {
		t.Fatalf("unexpected finding: %+v", f)
	}
	for _, flag := range []string{"Secure", "HttpOnly", "SameSite"} {
		if !strings.Contains(f.Details, flag) {
			t.Errorf("details should name missing flag %s: %q", flag, f.Details)
		}
	}
}

func TestCookiesAllFlagsPresentPasses(t *testing.T) {
	findings := runChecker(t, NewCookies(), map[string]string{
		"server/session.js": "res.cookie(\"sid\", sid, { secure: true, httpOnly: true, sameSite: \"lax\" });\n",
	})
	if !findings[0].Passed {
		t.Fatalf("expected pass, got %+v", findings)
	}
}

func TestXSSDynamicSinkFlaggedLiteralNot(t *testing.T) {
	findings := runChecker(t, NewXSS(), map[string]string{
		"src/widget.tsx": "<div dangerouslySetInnerHTML={{ __html: userBio }} />\n",
		"src/static.tsx": "<div dangerouslySetInnerHTML={{ __html: \"<b>hi</b>\" }} />\n",
	})
	if len(findings) != 1 {
		t.Fatalf("expected only the dynamic sink, got %+v", findings)
	}
	f := findings[0]
	if f.ID != "xss-dangerous-sink" || f.Location.File != "src/widget.tsx" {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

func TestAuthHardcodedCredentials(t *testing.T) {
	findings := runChecker(t, NewAuth(), map[string]string{
		"server/login.ts": "if (password === \"hunter2\") { grant(); }\n",
	})
	if findings[0].ID != "auth-hardcoded-credentials" || findings[0].Severity != finding.SeverityHigh {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestAuthDisabledMiddleware(t *testing.T) {
	findings := runChecker(t, NewAuth(), map[string]string{
		"server/app.ts": "  // requireAuth(req, res)\n",
	})
	if findings[0].ID != "auth-disabled-middleware" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestConfigCheckBuildChecksDisabled(t *testing.T) {
	findings := runChecker(t, NewConfigCheck(), map[string]string{
		"next.config.js": "module.exports = { typescript: { ignoreBuildErrors: true } };\n",
	})
	if findings[0].ID != "config-check-build-checks-disabled" || findings[0].Severity != finding.SeverityLow {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestInfoDisclosureStackTrace(t *testing.T) {
	findings := runChecker(t, NewInfoDisclosure(), map[string]string{
		"server/errors.ts": "res.json({ stack: err.stack });\n",
	})
	if findings[0].ID != "info-disclosure-stack-trace" || findings[0].Severity != finding.SeverityMedium {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestInputValidationInterpolation(t *testing.T) {
	findings := runChecker(t, NewInputValidation(), map[string]string{
		"server/db.ts": "db.query(`select * from users where id = ${req.params.id}`);\n",
	})
	if findings[0].ID != "input-validation-interpolation" || findings[0].Severity != finding.SeverityHigh {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestInputValidationMissingIsFileLevel(t *testing.T) {
	findings := runChecker(t, NewInputValidation(), map[string]string{
		"app/api/users/route.ts": "export async function POST(req: Request) {\n" +
			"  const body = await req.json();\n" +
			"  return Response.json({ name: body.name });\n" +
			"}\n",
	})
	var f *finding.Finding
	for i := range findings {
		if findings[i].ID == "input-validation-missing" {
			f = &findings[i]
		}
	}
	if f == nil {
		t.Fatalf("expected input-validation-missing, got %+v", findings)
	}
	if f.Severity != finding.SeverityLow {
		t.Errorf("severity = %q, want low", f.Severity)
	}
	if f.Location != nil {
		t.Errorf("file-level finding must not carry a location, got %+v", f.Location)
	}
	if !strings.Contains(f.Details, "app/api/users/route.ts") {
		t.Errorf("details must name the route file: %q", f.Details)
	}
}

func TestAICostDimensionsIndependent(t *testing.T) {
	findings := runChecker(t, NewAICost(), map[string]string{
		// Has error handling, lacks max tokens and budget tracking.
		"server/ai.ts": "try {\n" +
			"  const r = await openai.chat.completions.create({ model: \"gpt-4o\", messages });\n" +
			"} catch (e) { console.error(e); }\n",
	})
	ids := map[string]bool{}
	for _, f := range findings {
		ids[f.ID] = true
	}
	if !ids["ai-cost-no-max-tokens"] || !ids["ai-cost-no-budget-tracking"] {
		t.Errorf("expected max-tokens and budget findings, got %+v", findings)
	}
	if ids["ai-cost-no-error-handling"] {
		t.Errorf("error handling present, must not be flagged: %+v", findings)
	}
}
