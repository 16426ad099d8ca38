package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// SunProvider reads sunrise and sunset for the daily city.
type SunProvider struct {
	endpoint
	baseURL string
}

func NewSunProvider(cfg HTTPClientConfig) *SunProvider {
	return &SunProvider{
		endpoint: newEndpoint("sunrise-sunset", cfg),
		baseURL:  "https://api.sunrise-sunset.org/json",
	}
}

func (p *SunProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceSun }

func (p *SunProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", daily.City.Lat))
	values.Set("lng", fmt.Sprintf("%f", daily.City.Lon))
	values.Set("formatted", "0")

	var payload struct {
		Status  string `json:"status"`
		Results struct {
			Sunrise   string `json:"sunrise"`
			Sunset    string `json:"sunset"`
			DayLength int    `json:"day_length"`
		} `json:"results"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("%w: status %q", errMalformed, payload.Status)
	}

	sunrise, err := time.Parse(time.RFC3339, payload.Results.Sunrise)
	if err != nil {
		return nil, fmt.Errorf("%w: sunrise: %v", errMalformed, err)
	}
	sunset, err := time.Parse(time.RFC3339, payload.Results.Sunset)
	if err != nil {
		return nil, fmt.Errorf("%w: sunset: %v", errMalformed, err)
	}

	now := daily.Now
	return zeitgeist.SunReading{
		City:       daily.City.Name,
		Sunrise:    sunrise,
		Sunset:     sunset,
		DayLength:  payload.Results.DayLength,
		IsDaytime:  now.After(sunrise) && now.Before(sunset),
		SolarPhase: SolarPhaseAt(now.In(daily.City.Location())),
	}, nil
}

// SolarPhaseAt buckets the hour of t, in t's location.
func SolarPhaseAt(t time.Time) zeitgeist.SolarPhase {
	h := t.Hour()
	switch {
	case h >= 5 && h < 8:
		return zeitgeist.SolarDawn
	case h >= 8 && h < 12:
		return zeitgeist.SolarMorning
	case h >= 12 && h < 17:
		return zeitgeist.SolarAfternoon
	case h >= 17 && h < 20:
		return zeitgeist.SolarDusk
	default:
		return zeitgeist.SolarNight
	}
}
