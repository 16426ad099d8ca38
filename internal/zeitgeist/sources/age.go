package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// AgeProvider predicts the entity's age from its daily name via Agify.
type AgeProvider struct {
	endpoint
	baseURL string
}

func NewAgeProvider(cfg HTTPClientConfig) *AgeProvider {
	return &AgeProvider{
		endpoint: newEndpoint("agify", cfg),
		baseURL:  "https://api.agify.io",
	}
}

func (p *AgeProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceAge }

func (p *AgeProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Name string `json:"name"`
		Age  *int   `json:"age"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?name="+url.QueryEscape(daily.AgeName), &payload); err != nil {
		return nil, err
	}
	if payload.Age == nil {
		return nil, fmt.Errorf("%w: no age for %q", errMalformed, daily.AgeName)
	}
	return zeitgeist.AgeReading{
		Name:          daily.AgeName,
		PredictedAge:  *payload.Age,
		MaturityLevel: MaturityFor(*payload.Age),
	}, nil
}

// MaturityFor buckets a predicted age.
func MaturityFor(age int) zeitgeist.Maturity {
	switch {
	case age > 40:
		return zeitgeist.MaturityWise
	case age > 25:
		return zeitgeist.MaturityMature
	default:
		return zeitgeist.MaturityYouthful
	}
}
