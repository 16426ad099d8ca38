package sources

import (
	"context"
	"time"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const recentQuakeCount = 3

// QuakeProvider reads the USGS feed of significant earthquakes this week.
type QuakeProvider struct {
	endpoint
	baseURL string
}

func NewQuakeProvider(cfg HTTPClientConfig) *QuakeProvider {
	return &QuakeProvider{
		endpoint: newEndpoint("usgs", cfg),
		baseURL:  "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_week.geojson",
	}
}

func (p *QuakeProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceEarthquakes }

func (p *QuakeProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Features []struct {
			Properties struct {
				Mag   *float64 `json:"mag"`
				Place string   `json:"place"`
				Time  int64    `json:"time"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := p.getJSON(ctx, p.baseURL, &payload); err != nil {
		return nil, err
	}

	r := zeitgeist.QuakeReading{
		Count:  len(payload.Features),
		Recent: []zeitgeist.Quake{},
	}
	for i, f := range payload.Features {
		var mag float64
		if f.Properties.Mag != nil {
			mag = *f.Properties.Mag
		}
		r.MaxMagnitude = max(r.MaxMagnitude, mag)
		if i < recentQuakeCount {
			r.Recent = append(r.Recent, zeitgeist.Quake{
				Place:     f.Properties.Place,
				Magnitude: mag,
				Time:      time.UnixMilli(f.Properties.Time).UTC(),
			})
		}
	}
	r.Nervousness = Nervousness(r.MaxMagnitude)
	return r, nil
}

// Nervousness labels the strongest magnitude of the week.
func Nervousness(maxMagnitude float64) string {
	switch {
	case maxMagnitude > 6:
		return "very nervous"
	case maxMagnitude > 4:
		return "slightly nervous"
	default:
		return "stable"
	}
}
