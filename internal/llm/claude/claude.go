package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"bitcoin-analyst/internal/store"
	"bitcoin-analyst/internal/trace"
)

// Completer calls the Anthropic Claude messages API.
type Completer struct {
	cfg      *store.Config
	endpoint string
}

func NewCompleter(cfg *store.Config) *Completer {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Completer{cfg: cfg, endpoint: endpoint}
}

func (c *Completer) Complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return "", errors.New("ANTHROPIC_API_KEY missing")
	}

	body := map[string]any{
		"model":      c.cfg.LLM.Model,
		"max_tokens": c.cfg.LLM.MaxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(b))
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Content) == 0 {
		return "", errors.New("no content")
	}

	var sb strings.Builder
	for _, block := range r.Content {
		sb.WriteString(block.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
