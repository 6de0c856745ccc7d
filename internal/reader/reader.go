package reader

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"bitcoin-analyst/internal/api"
	"bitcoin-analyst/internal/logger"
)

// Reader fetches article pages and extracts their readable text.
type Reader struct {
	timeout  time.Duration
	maxChars int
}

// New creates a page reader. maxChars caps the extracted text per page.
func New(timeout time.Duration, maxChars int) *Reader {
	return &Reader{
		timeout:  timeout,
		maxChars: maxChars,
	}
}

// Read fetches a URL and returns its text content with scripts, styles and
// excess whitespace removed.
func (r *Reader) Read(ctx context.Context, pageURL string) (string, error) {
	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(r.timeout)

	// Browser headers to avoid being blocked
	c.OnRequest(func(req *colly.Request) {
		for key, value := range api.BrowserHeaders() {
			req.Headers.Set(key, value)
		}
	})

	var text string
	var parseErr error

	c.OnResponse(func(resp *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		if err != nil {
			parseErr = err
			return
		}
		doc.Find("script, style").Remove()
		text = CleanText(doc.Text())
	})

	c.OnError(func(resp *colly.Response, err error) {
		parseErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to visit %s: %w", pageURL, err)
	}
	c.Wait()

	if parseErr != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, parseErr)
	}

	text = truncate(text, r.maxChars)

	logger.Debug(ctx, "Page read", "url", pageURL, "chars", len(text))
	return text, nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// ExtractURLs pulls unique http(s) URLs out of free text, in order of
// first appearance.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:")
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// CleanText collapses runs of whitespace into single spaces.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	chunks := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, phrase := range strings.Split(line, "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, " ")
}
