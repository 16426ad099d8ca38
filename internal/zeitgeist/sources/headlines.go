package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/tfs2006/the-zeitgeist-pet/internal/common"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// DefaultFeedURL is the RSS feed read when none is configured.
const DefaultFeedURL = "https://feeds.bbci.co.uk/news/world/rss.xml"

const (
	headlineCount = 5
	headlineLimit = 120
)

// HeadlinesProvider reads the top items of an RSS or Atom feed.
type HeadlinesProvider struct {
	endpoint
	feedURL string
}

func NewHeadlinesProvider(cfg HTTPClientConfig, feedURL string) *HeadlinesProvider {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &HeadlinesProvider{
		endpoint: newEndpoint("headlines", cfg),
		feedURL:  feedURL,
	}
}

func (p *HeadlinesProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceHeadlines }

func (p *HeadlinesProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	body, err := p.getBody(ctx, p.feedURL)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	r := zeitgeist.HeadlinesReading{Feed: feed.Title, Items: []zeitgeist.Headline{}}
	for _, it := range feed.Items {
		if len(r.Items) == headlineCount {
			break
		}
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		h := zeitgeist.Headline{Title: common.Truncate(title, headlineLimit), Link: it.Link}
		if it.PublishedParsed != nil {
			h.Published = it.PublishedParsed.UTC()
		} else if it.UpdatedParsed != nil {
			h.Published = it.UpdatedParsed.UTC()
		}
		r.Items = append(r.Items, h)
	}
	return r, nil
}
