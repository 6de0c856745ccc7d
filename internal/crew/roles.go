package crew

import (
	"context"
	"fmt"
	"strings"

	"bitcoin-analyst/internal/interfaces"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/reader"
	"bitcoin-analyst/internal/store"
)

// Stage names used as task identifiers and JSON snapshot keys.
const (
	StageSearch         = "search"
	StageRead           = "read"
	StageSynthesis      = "synthesis"
	StageRecommendation = "recommendation"
	StageWebsite        = "website"
)

// NewDailyCrew builds the five-stage market commentary pipeline:
// search -> read -> synthesize -> recommend -> render.
func NewDailyCrew(cfg *store.Config, completer interfaces.Completer, searcher interfaces.Searcher, pages interfaces.PageReader) (*Crew, error) {
	researcher := &Agent{
		Role: "Bitcoin News Researcher",
		Goal: "Find the most recent and relevant Bitcoin articles from the past 24 hours.",
		Backstory: "You are an expert researcher specializing in cryptocurrency news. " +
			"You excel at finding the latest, most relevant articles about Bitcoin from " +
			"reputable sources, focusing on recent news that could impact trading decisions.",
	}

	analyst := &Agent{
		Role: "Article Analyst",
		Goal: "Extract and summarize key information from Bitcoin articles.",
		Backstory: "You are a skilled financial journalist with deep understanding of " +
			"cryptocurrency markets. You quickly identify the most important information " +
			"in articles: price movements, market sentiment, technical analysis and major news events.",
	}

	synthesizer := &Agent{
		Role: "Market Intelligence Synthesizer",
		Goal: "Combine multiple article summaries into coherent market insights.",
		Backstory: "You are a senior market analyst who excels at identifying patterns " +
			"and trends across multiple sources, creating a comprehensive view of the " +
			"current Bitcoin market situation.",
	}

	strategist := &Agent{
		Role: "Trading Strategist",
		Goal: "Provide clear buy/sell/hold recommendations based on market analysis.",
		Backstory: "You are an experienced cryptocurrency trading strategist with a track " +
			"record of successful market predictions. You are conservative and base " +
			"recommendations on solid evidence.",
	}

	designer := &Agent{
		Role: "Report Web Designer",
		Goal: "Create a vibrant, modern HTML report that displays all analysis results.",
		Backstory: "You are a web designer who builds visually striking single-page reports " +
			"with bright color schemes, smooth animations and clean modern layout, while " +
			"keeping the content professional and readable.",
	}

	searchTask := &Task{
		Name:  StageSearch,
		Agent: researcher,
		Description: fmt.Sprintf(`Search for the most recent articles about: %s
Focus on articles from the past 24 hours. Retrieve up to %d of the most relevant articles
from reputable financial news sources, cryptocurrency news sites, and major news outlets.
Include article titles, URLs, and brief descriptions.`, cfg.Topic, cfg.Search.MaxResults),
		ExpectedOutput: `A list of recent Bitcoin articles with:
- Article titles
- Source URLs
- Brief descriptions
- Publication dates (if available)`,
		Tool: searchTool(searcher, cfg.Topic),
	}

	readTask := &Task{
		Name:    StageRead,
		Agent:   analyst,
		Context: []*Task{searchTask},
		Description: `Using the articles found by the researcher, read each article and extract:
1. Main topic and key points
2. Price movements mentioned
3. Market sentiment (bullish/bearish/neutral)
4. Technical indicators or analysis
5. Major news events or catalysts
6. Risk factors mentioned

Create concise summaries (2-3 sentences per article) highlighting the most
important trading-relevant information. The full content of each article is
provided in the tool output below.`,
		ExpectedOutput: `A structured summary for each article containing:
- Key points
- Market sentiment
- Price implications
- Risk factors`,
		Tool: readTool(pages, cfg.Reader.MaxPages),
	}

	synthesisTask := &Task{
		Name:    StageSynthesis,
		Agent:   synthesizer,
		Context: []*Task{readTask},
		Description: `Using the article summaries, combine all summaries into a comprehensive
market analysis. Identify:
1. Common themes and patterns across articles
2. Overall market sentiment (bullish/bearish/neutral)
3. Key price levels or trends mentioned
4. Major catalysts or events
5. Conflicting information or uncertainties
6. Consensus views vs. outlier opinions

Create a unified view of the current Bitcoin market situation.`,
		ExpectedOutput: `A comprehensive synthesis report with:
- Overall market sentiment
- Key themes and patterns
- Price trends and levels
- Major catalysts
- Risk assessment`,
	}

	recommendationTask := &Task{
		Name:    StageRecommendation,
		Agent:   strategist,
		Context: []*Task{synthesisTask},
		Description: `Based on the synthesized market analysis, provide a clear trading
recommendation for TODAY:

1. Recommendation: BUY, SELL, or HOLD
2. Confidence level: High, Medium, or Low
3. Key reasons supporting the recommendation
4. Risk factors to consider
5. Suggested entry/exit points (if applicable)
6. Time horizon for the recommendation

Be specific and actionable. Base your recommendation on the evidence from the
articles analyzed.`,
		ExpectedOutput: `A clear trading recommendation with:
- BUY/SELL/HOLD decision
- Confidence level
- Supporting reasons
- Risk factors
- Entry/exit guidance`,
	}

	websiteTask := &Task{
		Name:    StageWebsite,
		Agent:   designer,
		Context: []*Task{searchTask, readTask, synthesisTask, recommendationTask},
		Description: `Create a complete, standalone HTML report (index.html) that includes:

1. All article titles from the search results
2. All article analyses and summaries
3. The complete market synthesis
4. The final trading recommendation

Design requirements:
- Vibrant, bright color scheme: cyan (#00D9FF), pink (#FF69B4), purple (#9B59B6), orange (#FF8C00)
- Clean, modern design with smooth animations and colorful gradients
- Sections for: Articles Found, Article Analysis, Market Synthesis, Final Recommendation
- Make the recommendation section stand out with a big, bold display
- Hover effects and modern, clean fonts
- Mobile-responsive

Write the complete HTML file with embedded CSS and JavaScript. The HTML must be
a complete, standalone document starting with <!DOCTYPE html>.`,
		ExpectedOutput: `A complete HTML file with:
- All article titles displayed
- All analyses and summaries
- Complete synthesis report
- Final recommendation prominently displayed
- Modern, vibrant styling with embedded CSS`,
	}

	return New(completer, searchTask, readTask, synthesisTask, recommendationTask, websiteTask)
}

// searchTool runs the web search once and hands results to the researcher.
func searchTool(searcher interfaces.Searcher, topic string) Tool {
	return func(ctx context.Context, _ string) (string, error) {
		return searcher.Search(ctx, topic)
	}
}

// readTool fetches the articles named in the search output and appends their
// text content. Unreadable pages are skipped.
func readTool(pages interfaces.PageReader, maxPages int) Tool {
	return func(ctx context.Context, contextText string) (string, error) {
		urls := reader.ExtractURLs(contextText)
		if len(urls) == 0 {
			return "No article URLs found in search results", nil
		}

		var sb strings.Builder
		read := 0
		for _, u := range urls {
			if read >= maxPages {
				break
			}
			content, err := pages.Read(ctx, u)
			if err != nil {
				logger.Warn(ctx, "Skipping unreadable article", "url", u, "error", err)
				continue
			}
			if content == "" {
				continue
			}
			fmt.Fprintf(&sb, "URL: %s\nContent: %s\n\n", u, content)
			read++
		}
		logger.Info(ctx, "Article reading completed", "found", len(urls), "read", read)

		if sb.Len() == 0 {
			return "No article content could be fetched", nil
		}
		return strings.TrimSpace(sb.String()), nil
	}
}
