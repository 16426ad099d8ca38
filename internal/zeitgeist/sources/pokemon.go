package sources

import (
	"context"
	"fmt"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// PokemonCount is the highest national dex number the spirit pokemon is drawn from.
const PokemonCount = 898

var typeColors = map[string]string{
	"fire":     "#F08030",
	"water":    "#6890F0",
	"grass":    "#78C850",
	"electric": "#F8D030",
	"psychic":  "#F85888",
	"ice":      "#98D8D8",
	"dragon":   "#7038F8",
	"dark":     "#705848",
	"fairy":    "#EE99AC",
	"ghost":    "#705898",
	"poison":   "#A040A0",
	"rock":     "#B8A038",
	"ground":   "#E0C068",
	"steel":    "#B8B8D0",
	"fighting": "#C03028",
	"flying":   "#A890F0",
	"bug":      "#A8B820",
}

// PokemonProvider draws a random spirit pokemon from PokeAPI.
type PokemonProvider struct {
	endpoint
	baseURL string
	rng     zeitgeist.Rand
}

func NewPokemonProvider(cfg HTTPClientConfig, rng zeitgeist.Rand) *PokemonProvider {
	return &PokemonProvider{
		endpoint: newEndpoint("pokeapi", cfg),
		baseURL:  "https://pokeapi.co/api/v2/pokemon",
		rng:      rng,
	}
}

func (p *PokemonProvider) ID() zeitgeist.SourceID { return zeitgeist.SourcePokemon }

func (p *PokemonProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	id := p.rng.IntN(PokemonCount) + 1

	var payload struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Sprites struct {
			FrontDefault string `json:"front_default"`
		} `json:"sprites"`
		Types []struct {
			Type struct {
				Name string `json:"name"`
			} `json:"type"`
		} `json:"types"`
	}
	if err := p.getJSON(ctx, fmt.Sprintf("%s/%d", p.baseURL, id), &payload); err != nil {
		return nil, err
	}

	r := zeitgeist.PokemonReading{
		Name:   payload.Name,
		ID:     payload.ID,
		Sprite: payload.Sprites.FrontDefault,
		Types:  make([]string, 0, len(payload.Types)),
		Color:  "#A8A878",
	}
	for _, t := range payload.Types {
		r.Types = append(r.Types, t.Type.Name)
	}
	if len(r.Types) > 0 {
		if c, ok := typeColors[r.Types[0]]; ok {
			r.Color = c
		}
	}
	return r, nil
}
