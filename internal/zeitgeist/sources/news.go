package sources

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tfs2006/the-zeitgeist-pet/internal/common"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const topStoryCount = 5

var (
	anxiousWords = []string{"war", "crash", "crisis", "death", "fear", "collapse", "panic", "disaster", "attack", "threat"}
	calmWords    = []string{"peace", "growth", "success", "breakthrough", "innovation", "hope", "recovery"}
	keywordWords = []string{"ai", "crypto", "bitcoin", "tech", "war", "peace", "climate", "space", "health"}
)

// NewsProvider reads the Hacker News front page and scores its anxiety.
type NewsProvider struct {
	endpoint
	baseURL string
}

func NewNewsProvider(cfg HTTPClientConfig) *NewsProvider {
	return &NewsProvider{
		endpoint: newEndpoint("hackernews", cfg),
		baseURL:  "https://hacker-news.firebaseio.com/v0",
	}
}

func (p *NewsProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceNews }

type hnItem struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

func (p *NewsProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var ids []int
	if err := p.getJSON(ctx, p.baseURL+"/topstories.json", &ids); err != nil {
		return nil, err
	}
	if len(ids) > topStoryCount {
		ids = ids[:topStoryCount]
	}

	// Any failed item fails the whole source.
	items := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			var it *hnItem
			if err := p.getJSON(gctx, fmt.Sprintf("%s/item/%d.json", p.baseURL, id), &it); err != nil {
				return err
			}
			items[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]zeitgeist.Story, 0, len(items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if it == nil || it.Title == "" {
			continue
		}
		stories = append(stories, zeitgeist.Story{Title: it.Title, Score: it.Score})
		titles = append(titles, it.Title)
	}
	text := strings.ToLower(strings.Join(titles, " "))

	return zeitgeist.NewsReading{
		Provider:     "hackernews",
		TopStories:   stories,
		AnxietyLevel: NewsAnxiety(text),
		Keywords:     NewsKeywords(text),
	}, nil
}

// NewsAnxiety starts at 50, adds 10 per anxious word present and removes 10
// per calm word present, clamped to 0..100. text must be lower case.
func NewsAnxiety(text string) int {
	a := 50 + 10*common.CountAny(text, anxiousWords...) - 10*common.CountAny(text, calmWords...)
	return max(0, min(100, a))
}

// NewsKeywords lists the tracked topics appearing as whole words in text.
func NewsKeywords(text string) []string {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		words[w] = struct{}{}
	}

	out := []string{}
	for _, k := range keywordWords {
		if _, ok := words[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
