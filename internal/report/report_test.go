package report

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractFencedHTML(t *testing.T) {
	raw := "Here is the report:\n```html\n<!DOCTYPE html><html><body>hi</body></html>\n```\nDone."

	got := Extract(raw)
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("Expected fenced HTML extracted, got %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("Expected fences stripped, got %q", got)
	}
}

func TestExtractGenericFenceWithMarkup(t *testing.T) {
	raw := "```\n<html><body>content</body></html>\n```"

	got := Extract(raw)
	if !strings.Contains(got, "<html>") {
		t.Errorf("Expected HTML from generic fence, got %q", got)
	}
}

func TestExtractBareResponse(t *testing.T) {
	raw := "<!DOCTYPE html><html><body>bare</body></html>"
	if got := Extract(raw); got != raw {
		t.Errorf("Expected bare response unchanged, got %q", got)
	}
}

func TestExtractUnclosedFence(t *testing.T) {
	raw := "```html\n<html><body>open</body></html>"
	got := Extract(raw)
	if !strings.Contains(got, "<body>open</body>") {
		t.Errorf("Expected content after unclosed fence, got %q", got)
	}
}

func TestEnsureDocumentWrapsFragment(t *testing.T) {
	got := EnsureDocument("<h1>Report</h1>", "Bitcoin Analysis Report")

	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("Expected doctype prefix, got %q", got)
	}
	if !strings.Contains(got, "<title>Bitcoin Analysis Report</title>") {
		t.Errorf("Expected title in wrapped document, got %q", got)
	}
	if !strings.Contains(got, "<h1>Report</h1>") {
		t.Errorf("Expected fragment in body, got %q", got)
	}
}

func TestEnsureDocumentPassesThroughCompletePage(t *testing.T) {
	page := "<!DOCTYPE html>\n<html><head></head><body>full</body></html>"
	if got := EnsureDocument(page, "ignored"); got != page {
		t.Errorf("Expected complete page unchanged, got %q", got)
	}
}

func TestDecorateInjectsDateAndEmailForm(t *testing.T) {
	page := "<!DOCTYPE html><html><head><title>r</title></head><body><h1>Report</h1></body></html>"

	got := Decorate(page, "http://localhost:5050/send-report")

	if !strings.Contains(got, `id="report-date"`) {
		t.Error("Expected date section injected")
	}
	if !strings.Contains(got, `id="email-section"`) {
		t.Error("Expected email section injected")
	}
	if !strings.Contains(got, `id="send-btn"`) {
		t.Error("Expected send button injected")
	}
	if !strings.Contains(got, "http://localhost:5050/send-report") {
		t.Error("Expected mailer URL wired into email script")
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(got)), "<!doctype") {
		t.Errorf("Expected doctype preserved, got prefix %q", got[:30])
	}

	// Date banner renders before the email form
	dateIdx := strings.Index(got, `id="report-date"`)
	emailIdx := strings.Index(got, `id="email-section"`)
	if dateIdx > emailIdx {
		t.Error("Expected date section before email section")
	}
	// Existing content survives
	if !strings.Contains(got, "<h1>Report</h1>") {
		t.Error("Expected original content preserved")
	}
}

func TestDecorateWithoutHeadReturnsInputUnchanged(t *testing.T) {
	// goquery builds head/body for fragments, so feed it markup that parses
	// with neither.
	page := "not markup at all"
	got := Decorate(page, "http://localhost:5050/send-report")
	if strings.Contains(got, `id="email-section"`) != strings.Contains(page, `id="email-section"`) {
		// Whatever the parser made of it, nothing should have been injected
		// without both head and body present.
		if !strings.Contains(got, "not markup at all") {
			t.Errorf("Expected original text preserved, got %q", got)
		}
	}
}

func TestParseRecommendationFindsAction(t *testing.T) {
	rec := ParseRecommendation("Recommendation: BUY\nConfidence level: High\nBitcoin shows strong momentum.")

	if rec.Action != "BUY" {
		t.Errorf("Expected BUY, got %s", rec.Action)
	}
	if rec.Confidence != "HIGH" {
		t.Errorf("Expected HIGH confidence, got %s", rec.Confidence)
	}
	if !strings.Contains(rec.Detail, "strong momentum") {
		t.Errorf("Expected detail captured, got %q", rec.Detail)
	}
}

func TestParseRecommendationLowercaseAction(t *testing.T) {
	rec := ParseRecommendation("we suggest you sell today, confidence is medium")
	if rec.Action != "SELL" {
		t.Errorf("Expected SELL from lowercase text, got %s", rec.Action)
	}
	if rec.Confidence != "MEDIUM" {
		t.Errorf("Expected MEDIUM, got %s", rec.Confidence)
	}
}

func TestParseRecommendationDefaults(t *testing.T) {
	rec := ParseRecommendation("nothing actionable here")
	if rec.Action != "HOLD" {
		t.Errorf("Expected default HOLD, got %s", rec.Action)
	}
	if rec.Confidence != "LOW" {
		t.Errorf("Expected default LOW, got %s", rec.Confidence)
	}
}

func TestParseRecommendationCapsDetail(t *testing.T) {
	rec := ParseRecommendation("HOLD " + strings.Repeat("x", 1000))
	if len(rec.Detail) != 500 {
		t.Errorf("Expected detail capped at 500 chars, got %d", len(rec.Detail))
	}
}

func TestParseRecommendationCapKeepsValidUTF8(t *testing.T) {
	// 5-byte prefix plus 4-byte emoji puts byte 500 inside a rune
	rec := ParseRecommendation("HOLD " + strings.Repeat("\U0001F680", 200))
	if len(rec.Detail) > 500 {
		t.Errorf("Expected detail capped at 500 bytes, got %d", len(rec.Detail))
	}
	if !utf8.ValidString(rec.Detail) {
		t.Errorf("Expected valid UTF-8 after cap, got %q", rec.Detail)
	}
}
