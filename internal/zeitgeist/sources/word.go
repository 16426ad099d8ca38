package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// WordProvider defines the daily mood word via the Free Dictionary API.
type WordProvider struct {
	endpoint
	baseURL string
}

func NewWordProvider(cfg HTTPClientConfig) *WordProvider {
	return &WordProvider{
		endpoint: newEndpoint("dictionaryapi", cfg),
		baseURL:  "https://api.dictionaryapi.dev/api/v2/entries/en",
	}
}

func (p *WordProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceWord }

func (p *WordProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	var entries []struct {
		Word     string `json:"word"`
		Phonetic string `json:"phonetic"`
		Meanings []struct {
			PartOfSpeech string `json:"partOfSpeech"`
			Definitions  []struct {
				Definition string `json:"definition"`
			} `json:"definitions"`
		} `json:"meanings"`
	}
	if err := p.getJSON(ctx, p.baseURL+"/"+url.PathEscape(daily.Word), &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return nil, fmt.Errorf("%w: no definition for %q", errMalformed, daily.Word)
	}

	e := entries[0]
	word := e.Word
	if word == "" {
		word = daily.Word
	}
	return zeitgeist.WordReading{
		Word:         word,
		Definition:   e.Meanings[0].Definitions[0].Definition,
		PartOfSpeech: e.Meanings[0].PartOfSpeech,
		Phonetic:     e.Phonetic,
	}, nil
}
