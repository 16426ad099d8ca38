package sources

import (
	"context"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// QuoteProvider reads a random quote from DummyJSON.
type QuoteProvider struct {
	endpoint
	baseURL string
}

func NewQuoteProvider(cfg HTTPClientConfig) *QuoteProvider {
	return &QuoteProvider{
		endpoint: newEndpoint("dummyjson", cfg),
		baseURL:  "https://dummyjson.com/quotes/random",
	}
}

func (p *QuoteProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceQuote }

func (p *QuoteProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := p.getJSON(ctx, p.baseURL, &payload); err != nil {
		return nil, err
	}
	return zeitgeist.QuoteReading{Content: payload.Quote, Author: payload.Author}, nil
}
