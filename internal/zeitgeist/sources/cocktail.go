package sources

import (
	"context"
	"fmt"

	"github.com/tfs2006/the-zeitgeist-pet/internal/common"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const instructionsLimit = 150

// CocktailProvider draws a random drink from TheCocktailDB.
type CocktailProvider struct {
	endpoint
	baseURL string
}

func NewCocktailProvider(cfg HTTPClientConfig) *CocktailProvider {
	return &CocktailProvider{
		endpoint: newEndpoint("cocktaildb", cfg),
		baseURL:  "https://www.thecocktaildb.com/api/json/v1/1/random.php",
	}
}

func (p *CocktailProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceCocktail }

func (p *CocktailProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Drinks []struct {
			Name         string `json:"strDrink"`
			Category     string `json:"strCategory"`
			Glass        string `json:"strGlass"`
			Instructions string `json:"strInstructions"`
			Thumb        string `json:"strDrinkThumb"`
			Alcoholic    string `json:"strAlcoholic"`
		} `json:"drinks"`
	}
	if err := p.getJSON(ctx, p.baseURL, &payload); err != nil {
		return nil, err
	}
	if len(payload.Drinks) == 0 {
		return nil, fmt.Errorf("%w: no drinks", errMalformed)
	}

	d := payload.Drinks[0]
	return zeitgeist.CocktailReading{
		Name:         d.Name,
		Category:     d.Category,
		Glass:        d.Glass,
		Instructions: common.Truncate(d.Instructions, instructionsLimit),
		Image:        d.Thumb,
		IsAlcoholic:  d.Alcoholic == "Alcoholic",
	}, nil
}
