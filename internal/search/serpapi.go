package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"bitcoin-analyst/internal/api"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/store"
	"bitcoin-analyst/internal/types"
)

const defaultEndpoint = "https://serpapi.com/search.json"

// Client searches the web through SerpAPI.
type Client struct {
	http       *api.Client
	maxResults int
}

// NewClient creates a SerpAPI search client.
func NewClient(cfg *store.Config) *Client {
	endpoint := defaultEndpoint
	if ep := os.Getenv("SERPAPI_ENDPOINT"); ep != "" {
		endpoint = ep
	}

	opts := []api.ClientOption{
		api.WithBaseURL(endpoint),
		api.WithTimeout(cfg.SearchTimeout()),
		api.WithLogging(true),
	}
	for key, value := range api.BrowserHeaders() {
		opts = append(opts, api.WithHeader(key, value))
	}

	return &Client{
		http:       api.NewClient(opts...),
		maxResults: cfg.Search.MaxResults,
	}
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

// Search runs a Google search through SerpAPI and returns results formatted
// as one text block per hit (title, URL, snippet).
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	articles, err := c.SearchArticles(ctx, query)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return "No results found", nil
	}

	var sb strings.Builder
	for _, a := range articles {
		fmt.Fprintf(&sb, "Title: %s\nURL: %s\nSnippet: %s\n\n", a.Title, a.URL, a.Snippet)
	}
	return strings.TrimSpace(sb.String()), nil
}

// SearchArticles runs the search and returns structured hits.
func (c *Client) SearchArticles(ctx context.Context, query string) ([]types.Article, error) {
	apiKey := os.Getenv("SERPER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("SERPER_API_KEY missing")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", apiKey)
	params.Set("num", fmt.Sprintf("%d", c.maxResults))
	params.Set("engine", "google")

	logger.Info(ctx, "Searching web", "query", query, "max_results", c.maxResults)

	req := api.NewRequest(http.MethodGet, "?"+params.Encode()).WithContext(ctx)
	resp, err := c.http.DoWithRetry(req, nil)
	if err != nil {
		switch api.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("serpapi authentication failed, check SERPER_API_KEY: %w", err)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("serpapi rate limit exceeded: %w", err)
		default:
			return nil, fmt.Errorf("serpapi request failed: %w", err)
		}
	}

	var sr searchResponse
	if err := resp.ParseJSON(&sr); err != nil {
		return nil, err
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", sr.Error)
	}

	articles := make([]types.Article, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		if r.Title == "" || r.Link == "" {
			continue
		}
		articles = append(articles, types.Article{
			Title:       r.Title,
			URL:         r.Link,
			Snippet:     r.Snippet,
			Source:      r.Source,
			PublishedAt: r.Date,
		})
	}

	logger.Info(ctx, "Web search completed", "query", query, "results", len(articles))
	return articles, nil
}
