package mailer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText extracts and cleans the text content of a rendered report
// page: scripts and styles dropped, whitespace collapsed, blank runs
// squeezed.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()
	text := doc.Text()

	lines := strings.Split(text, "\n")
	chunks := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	out := strings.Join(chunks, "\n")

	return excessNewlines.ReplaceAllString(out, "\n\n"), nil
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// slangReplacements maps casual phrases the design-focused model sometimes
// emits to professional equivalents. Longer phrases come first so they win
// over their substrings.
var slangReplacements = []struct {
	slang        string
	professional string
}{
	{"spill the tea", "provide details"},
	{"vibe check", "Market Assessment"},
	{"that's facts", ""},
	{"it's giving", "indicating"},
	{"stay woke", ""},
	{"no cap", ""},
	{"periodt", ""},
	{"bestie", ""},
	{"lowkey", ""},
	{"highkey", ""},
	{"fr fr", ""},
	{"slay", "perform well"},
	{"fire", "strong"},
	{"lit", "active"},
	{"tea", "information"},
}

var slangPatterns = buildSlangPatterns()

func buildSlangPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(slangReplacements))
	for i, r := range slangReplacements {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.slang) + `\b`)
	}
	return patterns
}

// Professionalize rewrites extracted report text in a professional tone:
// slang replaced, emoji stripped.
func Professionalize(text string) string {
	for i, r := range slangReplacements {
		text = slangPatterns[i].ReplaceAllString(text, r.professional)
	}
	return stripEmoji(text)
}

var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map symbols
	{0x1F1E0, 0x1F1FF}, // flags
	{0x2702, 0x27B0},
	{0x1F900, 0x1F9FF},
	{0x2600, 0x26FF},
}

func stripEmoji(text string) string {
	return strings.Map(func(r rune) rune {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				return -1
			}
		}
		return r
	}, text)
}

// ComposeBody wraps the professionalized report text in the client letter
// template.
func ComposeBody(report string) string {
	divider := strings.Repeat("-", 50)
	return fmt.Sprintf(`BITCOIN MARKET ANALYSIS REPORT
%s

Dear Valued Client,

Please find below our comprehensive Bitcoin market analysis and trading recommendations based on recent market data and sentiment analysis.

%s

%s

TRADING RECOMMENDATION SUMMARY

Based on our analysis of current market conditions, technical indicators, and fundamental factors, we provide the following actionable insights for your consideration.

Please note: This analysis is for informational purposes only and should not be considered as financial advice. Always conduct your own due diligence and consult with a qualified financial advisor before making trading decisions.

Best regards,
Bitcoin Analysis System

---
This report was generated automatically based on real-time market data and sentiment analysis.
`, divider, report, divider)
}
