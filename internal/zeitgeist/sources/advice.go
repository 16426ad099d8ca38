package sources

import (
	"context"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// AdviceProvider reads a random slip from the Advice Slip API.
type AdviceProvider struct {
	endpoint
	baseURL string
}

func NewAdviceProvider(cfg HTTPClientConfig) *AdviceProvider {
	return &AdviceProvider{
		endpoint: newEndpoint("adviceslip", cfg),
		baseURL:  "https://api.adviceslip.com/advice",
	}
}

func (p *AdviceProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceAdvice }

func (p *AdviceProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Slip struct {
			ID     int    `json:"id"`
			Advice string `json:"advice"`
		} `json:"slip"`
	}
	if err := p.getJSON(ctx, p.baseURL, &payload); err != nil {
		return nil, err
	}
	return zeitgeist.AdviceReading{Advice: payload.Slip.Advice, ID: payload.Slip.ID}, nil
}
