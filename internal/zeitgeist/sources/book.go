package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// BookProvider recommends a book on the daily subject from Open Library.
type BookProvider struct {
	endpoint
	baseURL string
	rng     zeitgeist.Rand
}

func NewBookProvider(cfg HTTPClientConfig, rng zeitgeist.Rand) *BookProvider {
	return &BookProvider{
		endpoint: newEndpoint("openlibrary", cfg),
		baseURL:  "https://openlibrary.org/subjects",
		rng:      rng,
	}
}

func (p *BookProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceBook }

func (p *BookProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Works []struct {
			Title   string `json:"title"`
			CoverID int    `json:"cover_id"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		} `json:"works"`
	}
	u := fmt.Sprintf("%s/%s.json?limit=10", p.baseURL, url.PathEscape(daily.BookSubject))
	if err := p.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Works) == 0 {
		return nil, fmt.Errorf("%w: no works for subject %q", errMalformed, daily.BookSubject)
	}

	w := payload.Works[p.rng.IntN(len(payload.Works))]
	names := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		names = append(names, a.Name)
	}
	author := strings.Join(names, ", ")
	if author == "" {
		author = "Unknown"
	}

	r := zeitgeist.BookReading{
		Title:   w.Title,
		Author:  author,
		Subject: daily.BookSubject,
		CoverID: w.CoverID,
	}
	if w.CoverID > 0 {
		r.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", w.CoverID)
	}
	return r, nil
}
