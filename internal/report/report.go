package report

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"bitcoin-analyst/internal/types"
)

// Extract pulls HTML out of a model response. Generated pages usually arrive
// wrapped in markdown code fences; bare responses are returned as-is.
func Extract(raw string) string {
	out := strings.TrimSpace(raw)

	if idx := strings.Index(out, "```html"); idx >= 0 {
		rest := out[idx+len("```html"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if strings.Contains(out, "```") {
		parts := strings.Split(out, "```")
		for _, part := range parts {
			lower := strings.ToLower(part)
			if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<body") {
				return strings.TrimSpace(part)
			}
		}
		// Fall back to any fenced block that looks like markup
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if strings.HasPrefix(trimmed, "<") && len(trimmed) > 100 {
				return trimmed
			}
		}
	}

	out = strings.ReplaceAll(out, "```html", "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}

// EnsureDocument wraps a bare HTML fragment in a full document skeleton. A
// response that already starts with a doctype or html element passes through.
func EnsureDocument(html, title string) string {
	trimmed := strings.TrimSpace(html)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return trimmed
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
</head>
<body>
%s
</body>
</html>`, title, trimmed)
}

const dateScript = `
function updateDate() {
    const now = new Date();
    const options = { year: 'numeric', month: 'long', day: 'numeric' };
    const dateString = now.toLocaleDateString('en-US', options);
    const dateElement = document.getElementById('report-date');
    if (dateElement) {
        dateElement.textContent = 'Report Date: ' + dateString;
    }
}
updateDate();
`

const emailScriptTemplate = `
async function sendReport() {
    const emailInput = document.getElementById('user-email');
    const email = emailInput.value.trim();
    const statusDiv = document.getElementById('email-status');

    const emailPattern = /^[a-zA-Z0-9._%%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$/;
    if (!email || !emailPattern.test(email)) {
        statusDiv.textContent = 'Please enter a valid email address';
        statusDiv.style.color = '#FF8FC7';
        return;
    }

    const sendBtn = document.getElementById('send-btn');
    sendBtn.disabled = true;
    sendBtn.textContent = 'Sending...';
    statusDiv.textContent = 'Sending report...';
    statusDiv.style.color = '#4DD0E1';

    try {
        const response = await fetch('%s', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ email: email })
        });
        const data = await response.json();
        if (data.success) {
            statusDiv.textContent = 'Report sent successfully!';
            statusDiv.style.color = '#51cf66';
            emailInput.value = '';
        } else {
            statusDiv.textContent = 'Error: ' + (data.error || 'Failed to send report');
            statusDiv.style.color = '#FF8FC7';
        }
    } catch (error) {
        statusDiv.textContent = 'Error: Could not connect to server. Make sure the mailer is running.';
        statusDiv.style.color = '#FF8FC7';
    } finally {
        sendBtn.disabled = false;
        sendBtn.textContent = 'Send Report';
    }
}
`

const dateSection = `<div id="report-date" style="text-align: center; font-size: 1.2rem; font-weight: bold; margin: 20px 0; padding: 15px; background: rgba(30, 30, 35, 0.8); border-radius: 10px; color: #FFB74D;">Report Date: Loading...</div>`

const emailSection = `<section id="email-section" style="max-width: 600px; margin: 30px auto; padding: 25px; background: rgba(30, 30, 35, 0.8); border-radius: 15px; box-shadow: 0 0 20px rgba(255, 143, 199, 0.3);">
<h2 style="color: #FF8FC7; text-align: center; margin-bottom: 20px;">Send Report via Email</h2>
<div style="display: flex; flex-direction: column; gap: 15px;">
<input type="email" id="user-email" placeholder="Enter your email address" required style="padding: 12px; font-size: 1rem; border: 2px solid #4DD0E1; border-radius: 8px; background: rgba(255, 255, 255, 0.95); color: #1A1A1A; outline: none;"/>
<button id="send-btn" onclick="sendReport()" style="padding: 12px 30px; font-size: 1.1rem; font-weight: bold; background: #E91E63; color: white; border: none; border-radius: 8px; cursor: pointer;">Send Report</button>
<div id="email-status" style="text-align: center; min-height: 25px; font-weight: 600; color: #FF8FC7;"></div>
</div>
</section>`

// Decorate injects the date display and the email form into a generated
// page. On unparseable input the page is returned unchanged.
func Decorate(html, mailerURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	head := doc.Find("head")
	body := doc.Find("body")
	if head.Length() == 0 || body.Length() == 0 {
		return html
	}

	head.AppendHtml("<script>" + dateScript + "</script>")
	head.AppendHtml("<script>" + fmt.Sprintf(emailScriptTemplate, mailerURL) + "</script>")

	body.PrependHtml(emailSection)
	body.PrependHtml(dateSection)

	out, err := doc.Html()
	if err != nil {
		return html
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(out)), "<!doctype") {
		out = "<!DOCTYPE html>\n" + out
	}
	return out
}

var (
	actionPattern     = regexp.MustCompile(`\b(BUY|SELL|HOLD)\b`)
	confidencePattern = regexp.MustCompile(`(?i)\b(high|medium|low)\b`)
)

// ParseRecommendation scans the strategist output for the verdict. Missing
// signals default to HOLD with LOW confidence.
func ParseRecommendation(text string) types.Recommendation {
	rec := types.Recommendation{Action: "HOLD", Confidence: "LOW"}

	if m := actionPattern.FindString(strings.ToUpper(text)); m != "" {
		rec.Action = m
	}
	if m := confidencePattern.FindString(text); m != "" {
		rec.Confidence = strings.ToUpper(m)
	}

	detail := strings.TrimSpace(text)
	if len(detail) > 500 {
		// Back up to a rune boundary so the snapshot stays valid UTF-8
		cut := 500
		for cut > 0 && !utf8.RuneStart(detail[cut]) {
			cut--
		}
		detail = detail[:cut]
	}
	rec.Detail = detail
	return rec
}
