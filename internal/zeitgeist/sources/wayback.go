package sources

import (
	"context"
	"net/url"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// WaybackProvider looks up the daily site as archived ten years ago.
type WaybackProvider struct {
	endpoint
	baseURL string
}

func NewWaybackProvider(cfg HTTPClientConfig) *WaybackProvider {
	return &WaybackProvider{
		endpoint: newEndpoint("wayback", cfg),
		baseURL:  "https://archive.org/wayback/available",
	}
}

func (p *WaybackProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceWayback }

func (p *WaybackProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	values := url.Values{}
	values.Set("url", daily.WaybackSite)
	values.Set("timestamp", daily.Now.AddDate(-10, 0, 0).Format("20060102"))

	var payload struct {
		ArchivedSnapshots struct {
			Closest *struct {
				Available bool   `json:"available"`
				URL       string `json:"url"`
				Timestamp string `json:"timestamp"`
			} `json:"closest"`
		} `json:"archived_snapshots"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	r := zeitgeist.WaybackReading{OriginalSite: daily.WaybackSite}
	if c := payload.ArchivedSnapshots.Closest; c != nil {
		r.ArchiveURL = c.URL
		r.ArchiveDate = c.Timestamp
		r.Available = c.Available
	}
	return r, nil
}
