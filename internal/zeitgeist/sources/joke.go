package sources

import (
	"context"
	"fmt"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// JokeProvider reads a safe-mode programming or pun joke from JokeAPI.
type JokeProvider struct {
	endpoint
	baseURL string
}

func NewJokeProvider(cfg HTTPClientConfig) *JokeProvider {
	return &JokeProvider{
		endpoint: newEndpoint("jokeapi", cfg),
		baseURL:  "https://v2.jokeapi.dev/joke/Programming,Pun",
	}
}

func (p *JokeProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceJoke }

func (p *JokeProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Error    bool   `json:"error"`
		Message  string `json:"message"`
		Type     string `json:"type"`
		Joke     string `json:"joke"`
		Setup    string `json:"setup"`
		Delivery string `json:"delivery"`
		Category string `json:"category"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?safe-mode", &payload); err != nil {
		return nil, err
	}
	if payload.Error {
		return nil, fmt.Errorf("%w: jokeapi: %s", errUnexpected, payload.Message)
	}

	joke := payload.Joke
	if payload.Type == "twopart" {
		joke = payload.Setup + " ... " + payload.Delivery
	}
	return zeitgeist.JokeReading{Type: payload.Type, Joke: joke, Category: payload.Category}, nil
}
