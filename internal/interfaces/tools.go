package interfaces

import "context"

// Searcher finds recent articles for a query and returns formatted results.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// PageReader fetches a URL and returns its readable text content.
type PageReader interface {
	Read(ctx context.Context, url string) (string, error)
}
