package mailer

import (
	"strings"
	"testing"
)

func TestExtractTextDropsScriptsAndStyles(t *testing.T) {
	html := `<!DOCTYPE html><html><head>
<style>body { color: red; }</style>
<script>console.log("hidden");</script>
</head><body><h1>Market Report</h1><p>Bitcoin is up.</p></body></html>`

	text, err := ExtractText(html)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if !strings.Contains(text, "Market Report") {
		t.Errorf("Expected heading text, got %q", text)
	}
	if !strings.Contains(text, "Bitcoin is up.") {
		t.Errorf("Expected body text, got %q", text)
	}
	if strings.Contains(text, "console.log") {
		t.Error("Expected script content removed")
	}
	if strings.Contains(text, "color: red") {
		t.Error("Expected style content removed")
	}
}

func TestExtractTextCollapsesWhitespace(t *testing.T) {
	html := "<html><body><p>one</p>\n\n\n\n\n<p>   two   </p></body></html>"

	text, err := ExtractText(html)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "one\ntwo" {
		t.Errorf("Expected collapsed text %q, got %q", "one\ntwo", text)
	}
}

func TestProfessionalizeReplacesSlang(t *testing.T) {
	in := "The market vibe check shows Bitcoin is fire, no cap. Let me spill the tea on prices."

	out := Professionalize(in)

	if strings.Contains(strings.ToLower(out), "vibe check") {
		t.Errorf("Expected 'vibe check' replaced, got %q", out)
	}
	if !strings.Contains(out, "Market Assessment") {
		t.Errorf("Expected professional replacement, got %q", out)
	}
	if strings.Contains(strings.ToLower(out), "no cap") {
		t.Errorf("Expected 'no cap' removed, got %q", out)
	}
	if !strings.Contains(out, "provide details") {
		t.Errorf("Expected 'spill the tea' replaced before 'tea', got %q", out)
	}
	if !strings.Contains(out, "strong") {
		t.Errorf("Expected 'fire' replaced with 'strong', got %q", out)
	}
}

func TestProfessionalizeKeepsOrdinaryWords(t *testing.T) {
	in := "Literally nothing happened to the firefighters."
	out := Professionalize(in)
	// Word boundaries keep "lit" and "fire" inside larger words untouched.
	if out != in {
		t.Errorf("Expected text unchanged, got %q", out)
	}
}

func TestProfessionalizeStripsEmoji(t *testing.T) {
	in := "Bitcoin to the moon \U0001F680\U0001F4C8 stay calm \U0001F600"
	out := Professionalize(in)
	for _, r := range out {
		if r >= 0x1F300 {
			t.Errorf("Expected emoji stripped, found %U in %q", r, out)
		}
	}
	if !strings.Contains(out, "Bitcoin to the moon") {
		t.Errorf("Expected text preserved, got %q", out)
	}
}

func TestComposeBodyWrapsReport(t *testing.T) {
	body := ComposeBody("Bitcoin rose 3% today.")

	if !strings.HasPrefix(body, "BITCOIN MARKET ANALYSIS REPORT") {
		t.Errorf("Expected letter header, got %q", body[:40])
	}
	if !strings.Contains(body, "Dear Valued Client,") {
		t.Error("Expected salutation in body")
	}
	if !strings.Contains(body, "Bitcoin rose 3% today.") {
		t.Error("Expected report content in body")
	}
	if !strings.Contains(body, "not be considered as financial advice") {
		t.Error("Expected disclaimer in body")
	}
}
