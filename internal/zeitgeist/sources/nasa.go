package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tfs2006/the-zeitgeist-pet/internal/common"
	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const explanationLimit = 200

// NASAProvider reads the Astronomy Picture of the Day. When the API call
// fails it scrapes the public APOD page, which needs no key.
type NASAProvider struct {
	endpoint
	apiKey  string
	baseURL string
	pageURL string
}

func NewNASAProvider(cfg HTTPClientConfig, apiKey string) *NASAProvider {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &NASAProvider{
		endpoint: newEndpoint("nasa-apod", cfg),
		apiKey:   apiKey,
		baseURL:  "https://api.nasa.gov/planetary/apod",
		pageURL:  "https://apod.nasa.gov/apod/astropix.html",
	}
}

func (p *NASAProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceNASA }

func (p *NASAProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	r, err := p.fetchAPI(ctx)
	if err == nil {
		return r, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	logging.Debug("apod api failed, scraping page", "error", err)
	r, scrapeErr := p.scrape(ctx)
	if scrapeErr != nil {
		return nil, fmt.Errorf("apod api: %v; apod page: %w", err, scrapeErr)
	}
	return r, nil
}

func (p *NASAProvider) fetchAPI(ctx context.Context) (zeitgeist.NASAReading, error) {
	var payload struct {
		Title       string `json:"title"`
		Explanation string `json:"explanation"`
		URL         string `json:"url"`
		Date        string `json:"date"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?api_key="+url.QueryEscape(p.apiKey), &payload); err != nil {
		return zeitgeist.NASAReading{}, err
	}
	if payload.Title == "" {
		return zeitgeist.NASAReading{}, fmt.Errorf("%w: missing title", errMalformed)
	}
	return zeitgeist.NASAReading{
		Title:       payload.Title,
		Explanation: common.Truncate(payload.Explanation, explanationLimit),
		ImageURL:    payload.URL,
		CosmicMood:  CosmicMood(payload.Title),
		Date:        payload.Date,
	}, nil
}

func (p *NASAProvider) scrape(ctx context.Context) (zeitgeist.NASAReading, error) {
	body, err := p.getBody(ctx, p.pageURL)
	if err != nil {
		return zeitgeist.NASAReading{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return zeitgeist.NASAReading{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	title := strings.TrimSpace(doc.Find("center b").First().Text())
	if title == "" {
		title = strings.TrimSpace(strings.TrimPrefix(doc.Find("title").First().Text(), "APOD:"))
	}
	if title == "" {
		return zeitgeist.NASAReading{}, fmt.Errorf("%w: apod page has no title", errMalformed)
	}

	var image string
	if src, ok := doc.Find("img").First().Attr("src"); ok {
		image = p.resolve(src)
	}

	var explanation string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if rest, ok := strings.CutPrefix(text, "Explanation:"); ok {
			explanation = strings.TrimSpace(rest)
			return false
		}
		return true
	})

	return zeitgeist.NASAReading{
		Title:       title,
		Explanation: common.Truncate(explanation, explanationLimit),
		ImageURL:    image,
		CosmicMood:  CosmicMood(title),
		Keyless:     true,
	}, nil
}

func (p *NASAProvider) resolve(src string) string {
	base, err := url.Parse(p.pageURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// CosmicMood reads the mood of the day from an APOD title. Later rules take
// precedence over earlier ones.
func CosmicMood(title string) zeitgeist.CosmicMood {
	t := strings.ToLower(title)
	mood := zeitgeist.CosmicWonder
	if common.HasAny(t, "black hole", "void") {
		mood = zeitgeist.CosmicNihilistic
	}
	if common.HasAny(t, "supernova", "explosion") {
		mood = zeitgeist.CosmicIntense
	}
	if common.HasAny(t, "nebula", "birth") {
		mood = zeitgeist.CosmicCreative
	}
	if common.HasAny(t, "earth", "moon") {
		mood = zeitgeist.CosmicGrounded
	}
	return mood
}
