package types

import "time"

// Article is a single search hit, optionally enriched with page content.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet,omitempty"`
	Content     string `json:"content,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Recommendation is the strategist verdict extracted from the pipeline output.
type Recommendation struct {
	Action     string `json:"action"`     // BUY, SELL or HOLD
	Confidence string `json:"confidence"` // HIGH, MEDIUM or LOW
	Detail     string `json:"detail,omitempty"`
}

// Report is the persisted result of one pipeline run: the rendered HTML page
// plus every intermediate stage output, keyed by stage name.
type Report struct {
	Date           string            `json:"date"` // calendar date, YYYY-MM-DD
	Topic          string            `json:"topic"`
	Outputs        map[string]string `json:"outputs"`
	Recommendation Recommendation    `json:"recommendation"`
	GeneratedAt    time.Time         `json:"generated_at"`
	HTML           string            `json:"-"`
}
